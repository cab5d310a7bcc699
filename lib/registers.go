package lib

import (
    "fmt"
    "log"
)

// memory addresses of the apu registers
const APUPulse1Control = 0x4000
const APUPulse1Sweep = 0x4001
const APUPulse1TimerLow = 0x4002
const APUPulse1TimerHigh = 0x4003

const APUPulse2Control = 0x4004
const APUPulse2Sweep = 0x4005
const APUPulse2TimerLow = 0x4006
const APUPulse2TimerHigh = 0x4007

const APUTriangleCounter = 0x4008
const APUTriangleUnused = 0x4009
const APUTriangleTimerLow = 0x400A
const APUTriangleTimerHigh = 0x400B

const APUNoiseBase = 0x400C
const APUDMCEnd = 0x4013

const APUChannelEnable = 0x4015
const APUFrameCounter = 0x4017

/* Decode a cpu write to one of the apu registers into the channel setters.
 * Noise and DMC registers are accepted and ignored since those channels are
 * not emulated. Anything outside the apu window is an error.
 */
func (apu *APU) WriteRegister(address uint16, value byte) error {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    switch address {
        case APUPulse1Control, APUPulse2Control:
            apu.writePulseControl(&apu.pulses[(address - APUPulse1Control) / 4], value)
        case APUPulse1Sweep, APUPulse2Sweep:
            apu.writePulseSweep(&apu.pulses[(address - APUPulse1Sweep) / 4], value)
        case APUPulse1TimerLow, APUPulse2TimerLow:
            pulse := &apu.pulses[(address - APUPulse1TimerLow) / 4]
            pulse.Timer.SetLow(value)
            if apu.config.Debug > 0 {
                log.Printf("APU: write %v timer low %v. Timer is now %v", pulse.Name, value, pulse.Timer.Reload)
            }
        case APUPulse1TimerHigh, APUPulse2TimerHigh:
            apu.writePulseTimerHigh(&apu.pulses[(address - APUPulse1TimerHigh) / 4], value)
        case APUTriangleCounter:
            control := (value >> 7) & 0x1
            apu.triangle.SetLinearControl(control == 1)
            apu.triangle.SetLinearReloadValue(uint16(value & 0x7f))
            if apu.config.Debug > 0 {
                log.Printf("APU: write triangle counter control=%v reload=%v", control, value & 0x7f)
            }
        case APUTriangleUnused:
        case APUTriangleTimerLow:
            apu.triangle.Timer.SetLow(value)
        case APUTriangleTimerHigh:
            apu.triangle.Timer.SetHigh(value & 0x7)
            if apu.triangle.Enabled {
                length, _ := LengthFromIndex(value >> 3)
                apu.triangle.LoadLengthCounter(length)
            }
            apu.triangle.ReloadLinearCounter()
            if apu.config.Debug > 0 {
                log.Printf("APU: write triangle timer high %v length %v", value & 0x7, apu.triangle.Length.Value)
            }
        case APUChannelEnable:
            apu.writeChannelEnable(value)
        case APUFrameCounter:
            mode := value >> 7
            apu.updateFrameCounterMode(mode == 1)
        default:
            if address >= APUNoiseBase && address <= APUDMCEnd {
                if apu.config.Debug > 1 {
                    log.Printf("APU: ignoring write to 0x%x=0x%x", address, value)
                }
                return nil
            }
            return fmt.Errorf("%w: 0x%x", ErrInvalidRegister, address)
    }

    return nil
}

func (apu *APU) writePulseControl(pulse *Pulse, value byte){
    duty := value >> 6
    loopEnvelope := (value >> 5) & 0x1
    constant := (value >> 4) & 0x1
    volume := value & 0xf

    if apu.config.Debug > 0 {
        log.Printf("APU: write %v control value=%v duty=%v loop=%v constant=%v volume=%v", pulse.Name, value, duty, loopEnvelope, constant, volume)
    }

    pulse.SetDuty(DutyTable[duty])
    /* the envelope loop flag doubles as the length counter halt */
    pulse.SetLengthCounterHalt(loopEnvelope == 0x1)
    pulse.ConfigureEnvelope(loopEnvelope == 0x1, constant == 0x1, volume)
}

func (apu *APU) writePulseSweep(pulse *Pulse, value byte){
    enable := (value >> 7) & 0x1
    period := (value >> 4) & 0x7
    negate := (value >> 3) & 0x1
    shift := value & 0x7

    if apu.config.Debug > 0 {
        log.Printf("APU: write %v sweep value=%v enable=%v period=%v negate=%v shift=%v", pulse.Name, value, enable, period, negate, shift)
    }

    pulse.ConfigureSweep(enable == 0x1, period, shift, negate == 0x1)
}

/* also restarts the phase and the envelope */
func (apu *APU) writePulseTimerHigh(pulse *Pulse, value byte){
    pulse.Timer.SetHigh(value & 0x7)
    if pulse.Enabled {
        length, _ := LengthFromIndex(value >> 3)
        pulse.LoadLengthCounter(length)
    }
    pulse.Reset()

    if apu.config.Debug > 0 {
        log.Printf("APU: write %v timer high %v length %v. Timer is now %v", pulse.Name, value & 0x7, pulse.Length.Value, pulse.Timer.Reload)
    }
}

func (apu *APU) writeChannelEnable(value byte){
    triangle := (value >> 2) & 0x1
    pulse2 := (value >> 1) & 0x1
    pulse1 := value & 0x1

    apu.routeWrite(ChannelPulse1, ChannelWrite{Kind: WriteEnabled, Flag: pulse1 == 0x1})
    apu.routeWrite(ChannelPulse2, ChannelWrite{Kind: WriteEnabled, Flag: pulse2 == 0x1})
    apu.routeWrite(ChannelTriangle, ChannelWrite{Kind: WriteEnabled, Flag: triangle == 0x1})

    if apu.config.Debug > 0 {
        log.Printf("APU: write channel enable value=%v triangle=%v pulse2=%v pulse1=%v", value, triangle, pulse2, pulse1)
    }
}

func boolToByte(x bool) byte {
    if x {
        return 1
    }

    return 0
}

/* the length counter bits of a $4015 read */
func (apu *APU) ReadStatus() byte {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    pulse1 := boolToByte(!apu.pulses[0].Length.IsZero())
    pulse2 := boolToByte(!apu.pulses[1].Length.IsZero())
    triangle := boolToByte(!apu.triangle.Length.IsZero())

    return (triangle << 2) | (pulse2 << 1) | pulse1
}
