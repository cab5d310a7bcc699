package lib

import (
    "testing"
)

func TestLengthCounter(test *testing.T){
    var length LengthCounter
    length.Load(3)

    length.ClockHalfFrame(true)
    length.ClockHalfFrame(true)
    if length.Value != 1 || length.IsZero() {
        test.Fatalf("expected 1 left but was %v", length.Value)
    }

    length.ClockHalfFrame(true)
    length.ClockHalfFrame(true)
    if !length.IsZero() {
        test.Fatalf("expected length counter to stop at 0 but was %v", length.Value)
    }
}

func TestLengthCounterHalt(test *testing.T){
    var length LengthCounter
    length.Load(10)
    length.SetHalt(true)

    for i := 0; i < 20; i++ {
        length.ClockHalfFrame(true)
    }
    if length.Value != 10 {
        test.Fatalf("halted length counter should hold 10 but was %v", length.Value)
    }

    /* a disabled channel is cleared even when halted */
    length.ClockHalfFrame(false)
    if !length.IsZero() {
        test.Fatalf("disabled channel should clear the length counter, was %v", length.Value)
    }
}

func TestLengthTable(test *testing.T){
    value, err := LengthFromIndex(1)
    if err != nil || value != 254 {
        test.Fatalf("expected 254 but got %v %v", value, err)
    }

    value, err = LengthFromIndex(31)
    if err != nil || value != 30 {
        test.Fatalf("expected 30 but got %v %v", value, err)
    }

    _, err = LengthFromIndex(32)
    if err == nil {
        test.Fatalf("index 32 should be rejected")
    }
}

func TestLinearCounter(test *testing.T){
    var linear LinearCounter
    linear.SetReloadValue(0xff)
    if linear.ReloadValue != 0x7f {
        test.Fatalf("reload value should be 7 bits but was 0x%x", linear.ReloadValue)
    }

    linear.SetReloadValue(4)
    linear.RequestReload()
    if linear.Value != 5 || !linear.ReloadPending {
        test.Fatalf("reload should set the counter to 5 right away, was %v", linear.Value)
    }

    for i := 0; i < 5; i++ {
        if linear.IsZero() {
            test.Fatalf("counter hit zero early after %v clocks", i)
        }
        linear.ClockQuarterFrame()
    }

    if !linear.IsZero() {
        test.Fatalf("expected zero after 5 clocks but was %v", linear.Value)
    }
    if linear.ReloadPending {
        test.Fatalf("an unhalted clock should clear the reload flag")
    }
}

func TestLinearCounterHalt(test *testing.T){
    var linear LinearCounter
    linear.SetHaltControl(true)
    linear.SetReloadValue(2)
    linear.RequestReload()

    for i := 0; i < 10; i++ {
        linear.ClockQuarterFrame()
    }

    if linear.Value != 3 {
        test.Fatalf("halted linear counter should hold 3 but was %v", linear.Value)
    }
    if !linear.ReloadPending {
        test.Fatalf("halted linear counter keeps the reload flag")
    }
}

func TestLinearCounterReloadClamps(test *testing.T){
    for _, value := range []uint16{0x7f, 0x80, 200, 0xffff} {
        var linear LinearCounter
        linear.SetReloadValue(value)
        if linear.ReloadValue != LinearMaximum {
            test.Fatalf("reload %v should clamp to %v but was %v", value, LinearMaximum, linear.ReloadValue)
        }

        linear.RequestReload()
        linear.ClockQuarterFrame()
        if linear.Value != LinearMaximum {
            test.Fatalf("reload %v: expected %v after one clock but was %v", value, LinearMaximum, linear.Value)
        }
    }
}
