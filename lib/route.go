package lib

import (
    "fmt"
    "log"
)

type WriteKind int
const (
    WriteDivider WriteKind = iota
    WriteDuty
    WriteEnabled
    WriteEnvelope
    WriteSweep
    WriteLengthHalt
    WriteLength
    WriteLinearControl
    WriteLinearReload
    WriteReset
)

func (kind WriteKind) String() string {
    switch kind {
        case WriteDivider: return "divider"
        case WriteDuty: return "duty"
        case WriteEnabled: return "enabled"
        case WriteEnvelope: return "envelope"
        case WriteSweep: return "sweep"
        case WriteLengthHalt: return "length halt"
        case WriteLength: return "length"
        case WriteLinearControl: return "linear control"
        case WriteLinearReload: return "linear reload"
        case WriteReset: return "reset"
    }

    return fmt.Sprintf("write(%d)", int(kind))
}

/* One configuration change for a single channel. Which fields are read
 * depends on Kind:
 *   WriteDivider, WriteLength: Value
 *   WriteDuty: Duty
 *   WriteEnabled, WriteLengthHalt: Flag
 *   WriteEnvelope: Flag is loop, Constant, Value is the volume/period
 *   WriteSweep: Flag is enabled, Period, Shift, Negate
 *   WriteLinearControl: Flag is the control bit, Value the reload value
 *   WriteLinearReload, WriteReset: nothing
 */
type ChannelWrite struct {
    Kind WriteKind
    Value uint16
    Duty float32
    Flag bool
    Constant bool
    Period byte
    Shift byte
    Negate bool
}

/* apply a write to the addressed channel. Unknown channels, and writes the
 * channel has no unit for (a sweep on the triangle), fail with ErrInvalidChannel
 * and leave the state alone.
 */
func (apu *APU) RouteWrite(channel Channel, write ChannelWrite) error {
    apu.lock.Lock()
    defer apu.lock.Unlock()
    return apu.routeWrite(channel, write)
}

func (apu *APU) routeWrite(channel Channel, write ChannelWrite) error {
    switch channel {
        case ChannelPulse1, ChannelPulse2:
            return apu.writePulse(&apu.pulses[channel], write)
        case ChannelTriangle:
            return apu.writeTriangle(&apu.triangle, write)
    }

    return fmt.Errorf("%w: %v", ErrInvalidChannel, channel)
}

func (apu *APU) writePulse(pulse *Pulse, write ChannelWrite) error {
    switch write.Kind {
        case WriteDivider:
            pulse.SetDivider(write.Value)
            if apu.config.Debug > 0 {
                log.Printf("APU: %v divider %v (%.2fhz)", pulse.Name, pulse.Timer.Reload, pulse.Frequency(apu.config.ClockRate))
            }
        case WriteDuty:
            pulse.SetDuty(write.Duty)
        case WriteEnabled:
            pulse.SetEnabled(write.Flag)
        case WriteEnvelope:
            pulse.ConfigureEnvelope(write.Flag, write.Constant, byte(min(write.Value, EnvelopeMax)))
            if apu.config.Debug > 0 {
                log.Printf("APU: %v envelope loop=%v constant=%v value=%v", pulse.Name, write.Flag, write.Constant, write.Value)
            }
        case WriteSweep:
            pulse.ConfigureSweep(write.Flag, write.Period, write.Shift, write.Negate)
            if apu.config.Debug > 0 {
                log.Printf("APU: %v sweep enable=%v period=%v shift=%v negate=%v", pulse.Name, write.Flag, write.Period, write.Shift, write.Negate)
            }
        case WriteLengthHalt:
            pulse.SetLengthCounterHalt(write.Flag)
        case WriteLength:
            pulse.LoadLengthCounter(write.Value)
        case WriteReset:
            pulse.Reset()
        default:
            return fmt.Errorf("%w: %v has no %v", ErrInvalidChannel, pulse.Name, write.Kind)
    }

    return nil
}

func (apu *APU) writeTriangle(triangle *Triangle, write ChannelWrite) error {
    switch write.Kind {
        case WriteDivider:
            triangle.SetDivider(write.Value)
            if apu.config.Debug > 0 {
                log.Printf("APU: %v divider %v (%.2fhz)", triangle.Name, triangle.Timer.Reload, triangle.Frequency(apu.config.ClockRate))
            }
        case WriteEnabled:
            triangle.SetEnabled(write.Flag)
        case WriteLinearControl:
            triangle.SetLinearControl(write.Flag)
            triangle.SetLinearReloadValue(write.Value)
        case WriteLinearReload:
            triangle.ReloadLinearCounter()
        case WriteLengthHalt:
            triangle.SetLinearControl(write.Flag)
        case WriteLength:
            triangle.LoadLengthCounter(write.Value)
        case WriteReset:
            triangle.Reset()
        default:
            return fmt.Errorf("%w: %v has no %v", ErrInvalidChannel, triangle.Name, write.Kind)
    }

    return nil
}
