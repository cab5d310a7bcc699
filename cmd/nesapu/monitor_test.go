package main

import (
    "strings"
    "testing"

    apu "github.com/kazzmir/nesapu/lib"
)

func TestFormatPulse(test *testing.T){
    pulse := apu.MakePulse("pulse1")
    pulse.SetDivider(427)
    pulse.SetDuty(0.5)
    pulse.SetEnabled(true)
    pulse.LoadLengthCounter(254)

    text := formatPulse(pulse, apu.CPUFrequency)
    for _, expected := range []string{"enabled  on", "silent   off", "divider  427 (260.75hz)", "length   254 halt=off"} {
        if !strings.Contains(text, expected) {
            test.Fatalf("expected '%v' in\n%v", expected, text)
        }
    }
}

func TestFormatTriangle(test *testing.T){
    triangle := apu.MakeTriangle("triangle")
    text := formatTriangle(triangle, apu.CPUFrequency)
    if !strings.Contains(text, "silent   on") || !strings.Contains(text, "step     15 output=0") {
        test.Fatalf("unexpected triangle text\n%v", text)
    }
}

func TestFormatStatus(test *testing.T){
    text := formatStatus(apu.State{FrameMode: true}, 1000, 3, true)
    if !strings.Contains(text, "5-step") || !strings.Contains(text, "PAUSED") || !strings.Contains(text, "frame 3") {
        test.Fatalf("unexpected status %v", text)
    }
}
