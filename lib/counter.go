package lib

import (
    "fmt"
)

/* indexed by the top 5 bits of the length-load register */
var LengthTable [32]byte = [32]byte{
    10, 254, 20,  2, 40,  4, 80,  6, 160,  8, 60, 10, 14, 12, 26, 14,
    12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

func LengthFromIndex(index byte) (uint16, error) {
    if int(index) >= len(LengthTable) {
        return 0, fmt.Errorf("invalid length index %v", index)
    }

    return uint16(LengthTable[index]), nil
}

type LengthCounter struct {
    Halt bool
    Value uint16
}

func (length *LengthCounter) SetHalt(halt bool){
    length.Halt = halt
}

func (length *LengthCounter) Load(value uint16){
    length.Value = value
}

func (length *LengthCounter) ClockHalfFrame(channelEnabled bool) {
    if !length.Halt && length.Value > 0 {
        length.Value -= 1
    }

    if !channelEnabled {
        length.Value = 0
    }
}

func (length *LengthCounter) IsZero() bool {
    return length.Value == 0
}

/* https://www.nesdev.org/wiki/APU_Triangle
 *
 * A reload request loads reload+1 right away, so after the next quarter
 * frame the counter holds the reload value.
 */
/* 7 bits */
const LinearMaximum = 0x7f

type LinearCounter struct {
    Halt bool
    Value uint16
    ReloadValue uint16
    ReloadPending bool
}

func (linear *LinearCounter) SetHaltControl(halt bool){
    linear.Halt = halt
}

func (linear *LinearCounter) SetReloadValue(value uint16){
    if value > LinearMaximum {
        value = LinearMaximum
    }
    linear.ReloadValue = value
}

func (linear *LinearCounter) RequestReload(){
    linear.Value = linear.ReloadValue + 1
    linear.ReloadPending = true
}

func (linear *LinearCounter) ClockQuarterFrame(){
    if !linear.Halt && linear.Value > 0 {
        linear.Value -= 1
    }

    if !linear.Halt {
        linear.ReloadPending = false
    }
}

func (linear *LinearCounter) IsZero() bool {
    return linear.Value == 0
}
