package util

import (
    "encoding/binary"
    "os"
    "path/filepath"
    "testing"
)

func TestWavWriter(test *testing.T){
    path := filepath.Join(test.TempDir(), "out.wav")
    file, err := os.Create(path)
    if err != nil {
        test.Fatalf("could not create file: %v", err)
    }

    writer, err := MakeWavWriter(file, 44100, 2)
    if err != nil {
        test.Fatalf("could not make writer: %v", err)
    }

    writer.Write([]float32{0, 0, 0.5, 0.5, 2, -2})
    writer.Write([]float32{-1, 1})

    if err := writer.Close(); err != nil {
        test.Fatalf("close failed: %v", err)
    }
    file.Close()

    data, err := os.ReadFile(path)
    if err != nil {
        test.Fatalf("could not read file: %v", err)
    }

    if len(data) != wavHeaderSize + 16 {
        test.Fatalf("expected %v bytes but got %v", wavHeaderSize + 16, len(data))
    }

    if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
        test.Fatalf("bad wav markers")
    }
    if binary.LittleEndian.Uint32(data[4:]) != 36 + 16 {
        test.Fatalf("bad riff size %v", binary.LittleEndian.Uint32(data[4:]))
    }
    if binary.LittleEndian.Uint32(data[40:]) != 16 {
        test.Fatalf("bad data size %v", binary.LittleEndian.Uint32(data[40:]))
    }
    if binary.LittleEndian.Uint16(data[22:]) != 2 || binary.LittleEndian.Uint32(data[24:]) != 44100 {
        test.Fatalf("bad format chunk")
    }

    sample := func(i int) int16 {
        return int16(binary.LittleEndian.Uint16(data[wavHeaderSize + i * 2:]))
    }

    if sample(2) != 16383 {
        test.Fatalf("expected half scale 16383 but got %v", sample(2))
    }
    if sample(4) != 32767 || sample(5) != -32767 {
        test.Fatalf("samples should be clipped, got %v %v", sample(4), sample(5))
    }
}

func TestWavWriterInvalid(test *testing.T){
    file, err := os.Create(filepath.Join(test.TempDir(), "bad.wav"))
    if err != nil {
        test.Fatalf("could not create file: %v", err)
    }
    defer file.Close()

    _, err = MakeWavWriter(file, 0, 1)
    if err == nil {
        test.Fatalf("a zero sample rate should fail")
    }
}
