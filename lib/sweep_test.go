package lib

import (
    "testing"
)

func TestSweepShiftZero(test *testing.T){
    var sweep Sweep

    timer := Timer{Reload: 300}
    sweep.Configure(true, 0, 0, true)
    sweep.ClockQuarterFrame(&timer)
    if timer.Reload != 0 {
        test.Fatalf("negate with shift 0 should subtract the whole reload, got %v", timer.Reload)
    }

    timer = Timer{Reload: 300}
    sweep.Configure(true, 0, 0, false)
    sweep.ClockQuarterFrame(&timer)
    if timer.Reload != 600 {
        test.Fatalf("add with shift 0 should double the reload, got %v", timer.Reload)
    }

    timer = Timer{Reload: 1500}
    sweep.Configure(true, 0, 0, false)
    sweep.ClockQuarterFrame(&timer)
    if timer.Reload != 1500 {
        test.Fatalf("an add past 11 bits should leave the reload alone, got %v", timer.Reload)
    }
}

func TestSweepNegateNeverUnderflows(test *testing.T){
    var sweep Sweep
    for shift := byte(0); shift <= 7; shift++ {
        for reload := uint16(0); reload <= MaximumTimerReload; reload++ {
            timer := Timer{Reload: reload}
            sweep.Configure(true, 0, shift, true)
            sweep.ClockQuarterFrame(&timer)
            if timer.Reload > reload {
                test.Fatalf("reload %v shift %v went up to %v", reload, shift, timer.Reload)
            }
            if timer.Reload != reload - (reload >> shift) {
                test.Fatalf("reload %v shift %v: expected %v but got %v", reload, shift, reload - (reload >> shift), timer.Reload)
            }
        }
    }
}

func TestSweepAddNeverWraps(test *testing.T){
    var sweep Sweep
    for shift := byte(0); shift <= 7; shift++ {
        for reload := uint16(0); reload <= MaximumTimerReload; reload++ {
            timer := Timer{Reload: reload}
            sweep.Configure(true, 0, shift, false)
            sweep.ClockQuarterFrame(&timer)
            if timer.Reload > MaximumTimerReload {
                test.Fatalf("reload %v shift %v overflowed to %v", reload, shift, timer.Reload)
            }
            if timer.Reload < reload {
                test.Fatalf("reload %v shift %v wrapped to %v", reload, shift, timer.Reload)
            }
        }
    }
}

func TestSweepDisabledKeepsCountdown(test *testing.T){
    var sweep Sweep
    timer := Timer{Reload: 400}
    sweep.Configure(false, 0, 1, false)
    for i := 0; i < 10; i++ {
        sweep.ClockQuarterFrame(&timer)
    }
    if timer.Reload != 400 {
        test.Fatalf("disabled sweep changed the reload to %v", timer.Reload)
    }
}

func TestSweepPeriod(test *testing.T){
    var sweep Sweep
    timer := Timer{Reload: 256}
    /* period 2 fires on every third clock */
    sweep.Configure(true, 2, 8, false)
    if sweep.ShiftCount != 7 {
        test.Fatalf("shift should clamp to 7 but was %v", sweep.ShiftCount)
    }

    expected := []uint16{256, 256, 258, 258, 258, 260}
    for i, value := range expected {
        sweep.ClockQuarterFrame(&timer)
        if timer.Reload != value {
            test.Fatalf("clock %v: expected reload %v but was %v", i + 1, value, timer.Reload)
        }
    }
}

func TestSweepTarget(test *testing.T){
    var sweep Sweep
    timer := Timer{Reload: 0x600}
    sweep.Configure(true, 0, 1, false)
    value, ok := sweep.Target(&timer)
    if ok {
        test.Fatalf("target 0x%x should be out of range", value)
    }

    sweep.Configure(true, 0, 1, true)
    value, ok = sweep.Target(&timer)
    if !ok || value != 0x300 {
        test.Fatalf("expected target 0x300 but got 0x%x %v", value, ok)
    }
    if timer.Reload != 0x600 {
        test.Fatalf("computing the target must not change the timer")
    }
}
