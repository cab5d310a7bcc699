//go:build !windows

package util

import (
    "os/exec"
    "os"
    "io"
    "log"
    "fmt"
    "time"
    "bytes"
    "encoding/binary"
    "context"
    "strconv"
)

func FindFfmpegBinary() (string, error) {
    return exec.LookPath("ffmpeg")
}

func niceSize(path string) string {
    info, err := os.Stat(path)
    if err != nil {
        return ""
    }

    size := float64(info.Size())
    suffixes := []string{"b", "kb", "mb", "gb"}
    suffix := 0

    for size > 1024 && suffix < len(suffixes) - 1 {
        size /= 1024
        suffix += 1
    }

    return fmt.Sprintf("%.2f%v", size, suffixes[suffix])
}

func waitForProcess(command *exec.Cmd, timeout int){
    done := make(chan struct{})
    go func(){
        command.Wait()
        close(done)
    }()

    select {
        case <-done:
        case <-time.After(time.Second * time.Duration(timeout)):
            /* Didn't die on its own, so we forcifully kill it */
            log.Printf("Killing pid %v", command.Process.Pid)
            command.Process.Kill()
            <-done
    }
}

/* ffmpeg picks the codec from the output file extension (mp3, ogg, flac, ..) */
func ffmpegArguments(output string, sampleRate int, channels int) []string {
    return []string{
        "-f", "f32le", // audio is uncompressed pcm in float32 format
        "-ar", strconv.Itoa(sampleRate),
        "-ac", strconv.Itoa(channels),
        "-i", "pipe:3", // audio is passed as fd 3
        "-y", // overwrite output if the file already exists
        output,
    }
}

/* Encode interleaved float32 audio from audioIn into output until quit is
 * done or audioIn is closed.
 */
func EncodeAudio(quit context.Context, output string, sampleRate int, channels int, audioIn <-chan []float32) error {
    ffmpeg_binary_path, err := FindFfmpegBinary()
    if err != nil {
        return fmt.Errorf("Could not find ffmpeg: %w", err)
    }

    audio_reader, audio_writer, err := os.Pipe()
    if err != nil {
        return err
    }

    log.Printf("Launching ffmpeg")
    ffmpeg_process := exec.Command(ffmpeg_binary_path, ffmpegArguments(output, sampleRate, channels)...)
    ffmpeg_process.ExtraFiles = []*os.File{audio_reader}

    ffmpeg_process.Stdout = io.Discard
    ffmpeg_process.Stderr = io.Discard

    err = ffmpeg_process.Start()
    if err != nil {
        audio_reader.Close()
        audio_writer.Close()
        return fmt.Errorf("Could not start ffmpeg: %w", err)
    }
    /* the child has its own copy now */
    audio_reader.Close()

    log.Printf("Recording to %v", output)
    startTime := time.Now()

    var audioBuffer bytes.Buffer
    var writeErr error

    loop:
    for {
        select {
            case <-quit.Done():
                break loop
            case audio, ok := <-audioIn:
                if !ok {
                    break loop
                }
                audioBuffer.Reset()
                binary.Write(&audioBuffer, binary.LittleEndian, audio)
                _, writeErr = audio_writer.Write(audioBuffer.Bytes())
                if writeErr != nil {
                    break loop
                }
        }
    }

    /* ffmpeg will normally close on its own if its input is closed */
    audio_writer.Close()
    waitForProcess(ffmpeg_process, 10)
    log.Printf("Recording has ended. Saved '%v' for %v size %v", output, time.Now().Sub(startTime), niceSize(output))

    if writeErr != nil {
        return fmt.Errorf("Could not write audio to ffmpeg: %w", writeErr)
    }

    return nil
}
