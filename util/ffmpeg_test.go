//go:build !windows

package util

import (
    "context"
    "os"
    "path/filepath"
    "testing"
)

func TestFfmpegArguments(test *testing.T){
    args := ffmpegArguments("out.ogg", 48000, 2)
    joined := ""
    for _, arg := range args {
        joined += arg + " "
    }

    expected := "-f f32le -ar 48000 -ac 2 -i pipe:3 -y out.ogg "
    if joined != expected {
        test.Fatalf("expected '%v' but got '%v'", expected, joined)
    }
}

func TestEncodeAudio(test *testing.T){
    _, err := FindFfmpegBinary()
    if err != nil {
        test.Skip("ffmpeg is not installed")
    }

    output := filepath.Join(test.TempDir(), "out.flac")
    audio := make(chan []float32, 10)
    for i := 0; i < 10; i++ {
        samples := make([]float32, 4410)
        for j := range samples {
            if j % 100 < 50 {
                samples[j] = 0.25
            }
        }
        audio <- samples
    }
    close(audio)

    err = EncodeAudio(context.Background(), output, 44100, 1, audio)
    if err != nil {
        test.Fatalf("encode failed: %v", err)
    }

    info, err := os.Stat(output)
    if err != nil || info.Size() == 0 {
        test.Fatalf("expected ffmpeg to write %v", output)
    }
}
