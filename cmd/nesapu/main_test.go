package main

import (
    "encoding/binary"
    "os"
    "path/filepath"
    "testing"

    apu "github.com/kazzmir/nesapu/lib"
)

func TestPlayerRenderWav(test *testing.T){
    config := apu.DefaultConfig()
    player, err := MakePlayer(config, "demo", 0)
    if err != nil {
        test.Fatalf("could not make player: %v", err)
    }
    defer player.Close()

    path := filepath.Join(test.TempDir(), "demo.wav")
    err = player.RenderWav(path, 0.5)
    if err != nil {
        test.Fatalf("render failed: %v", err)
    }

    contents, err := os.ReadFile(path)
    if err != nil {
        test.Fatalf("could not read wav: %v", err)
    }

    /* 0.5 seconds of 16-bit stereo */
    expected := 44 + 22050 * 2 * 2
    if len(contents) != expected {
        test.Fatalf("expected %v bytes but got %v", expected, len(contents))
    }

    loud := false
    for i := 44; i < len(contents); i += 4 {
        left := int16(binary.LittleEndian.Uint16(contents[i:]))
        right := int16(binary.LittleEndian.Uint16(contents[i+2:]))
        if left != right {
            test.Fatalf("both channels should carry the same sample")
        }
        if left != 0 {
            loud = true
        }
    }
    if !loud {
        test.Fatalf("the demo should make some noise")
    }
}

func TestPlayerMissingScript(test *testing.T){
    _, err := MakePlayer(apu.DefaultConfig(), "no-such-script", 0)
    if err == nil {
        test.Fatalf("an unknown script should fail")
    }
}

func TestPlayerScriptFile(test *testing.T){
    path := filepath.Join(test.TempDir(), "tone.lua")
    os.WriteFile(path, []byte("pulse_enable(0, true)\npulse_divider(0, 300)\n"), 0644)

    player, err := MakePlayer(apu.DefaultConfig(), path, 0)
    if err != nil {
        test.Fatalf("could not make player: %v", err)
    }
    defer player.Close()

    if player.APU.Snapshot().Pulses[0].Timer.Reload != 300 {
        test.Fatalf("script file was not run")
    }
}
