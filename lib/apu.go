package lib

import (
    "errors"
    "fmt"
    "log"
    "math"
    "sync"
)

var ErrInvalidChannel = errors.New("invalid channel")
var ErrInvalidRegister = errors.New("invalid apu register")
var ErrInvalidConfig = errors.New("invalid apu config")

type Channel int
const (
    ChannelPulse1 Channel = iota
    ChannelPulse2
    ChannelTriangle
)

const NumPulseChannels = 2
const NumChannels = 3

func (channel Channel) String() string {
    switch channel {
        case ChannelPulse1: return "pulse1"
        case ChannelPulse2: return "pulse2"
        case ChannelTriangle: return "triangle"
    }

    return fmt.Sprintf("channel(%d)", int(channel))
}

type Config struct {
    /* output samples per second, one Tick() per sample */
    SampleRate float64
    /* master clock in hz that the channel dividers count */
    ClockRate float64
    /* interleaved copies of each sample produced by AudioStream, 1 is mono */
    Channels int
    Mixer MixerMode
    /* >0 logs register level activity */
    Debug int
}

func DefaultConfig() Config {
    return Config{
        SampleRate: 44100,
        ClockRate: CPUFrequency,
        Channels: 2,
        Mixer: MixerLinear,
    }
}

func (config Config) Validate() error {
    if config.SampleRate <= 0 || math.IsInf(config.SampleRate, 0) || math.IsNaN(config.SampleRate) {
        return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, config.SampleRate)
    }

    if config.ClockRate <= 0 || math.IsInf(config.ClockRate, 0) || math.IsNaN(config.ClockRate) {
        return fmt.Errorf("%w: clock rate %v", ErrInvalidConfig, config.ClockRate)
    }

    if config.Channels < 1 || config.Channels > 8 {
        return fmt.Errorf("%w: output channels %v", ErrInvalidConfig, config.Channels)
    }

    switch config.Mixer {
        case MixerLinear, MixerNonlinear:
        default:
            return fmt.Errorf("%w: mixer %v", ErrInvalidConfig, config.Mixer)
    }

    return nil
}

/* The APU owns both pulse channels and the triangle channel. All access goes
 * through one mutex: register writes and frame-sequencer hooks come from the
 * emulation goroutine while Tick() is called from the audio goroutine.
 */
type APU struct {
    lock sync.Mutex
    config Config

    pulses [NumPulseChannels]Pulse
    triangle Triangle

    /* true for 5-step mode. only stored, the sequencer driver owns the timing */
    frameMode bool
}

/* a copy of the apu state, taken under the lock */
type State struct {
    Pulses [NumPulseChannels]Pulse
    Triangle Triangle
    FrameMode bool
}

func MakeAPU(config Config) (*APU, error) {
    if config.ClockRate == 0 {
        config.ClockRate = CPUFrequency
    }
    if config.Channels == 0 {
        config.Channels = 1
    }

    err := config.Validate()
    if err != nil {
        return nil, err
    }

    return &APU{
        config: config,
        pulses: [NumPulseChannels]Pulse{
            MakePulse("pulse1"),
            MakePulse("pulse2"),
        },
        triangle: MakeTriangle("triangle"),
    }, nil
}

func (apu *APU) Config() Config {
    return apu.config
}

func pulseChannel(channel int) (Channel, error) {
    if channel < 0 || channel >= NumPulseChannels {
        return ChannelPulse1, fmt.Errorf("%w: pulse channel %v", ErrInvalidChannel, channel)
    }

    return ChannelPulse1 + Channel(channel), nil
}

/* produce the next mixed output sample */
func (apu *APU) Tick() float32 {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    rate := apu.config.SampleRate
    clock := apu.config.ClockRate

    pulse1 := apu.pulses[0].Tick(rate, clock)
    pulse2 := apu.pulses[1].Tick(rate, clock)
    triangle := apu.triangle.Tick(rate, clock)

    return Mix(apu.config.Mixer, pulse1, pulse2, triangle)
}

/* one Tick() per slot. the lock is taken per sample so writes from another
 * goroutine land between samples rather than after the whole buffer
 */
func (apu *APU) Fill(out []float32) {
    for i := range out {
        out[i] = apu.Tick()
    }
}

func (apu *APU) QuarterFrame() {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    apu.pulses[0].QuarterFrame()
    apu.pulses[1].QuarterFrame()
    apu.triangle.QuarterFrame()
}

func (apu *APU) HalfFrame() {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    apu.pulses[0].HalfFrame()
    apu.pulses[1].HalfFrame()
    apu.triangle.HalfFrame()
}

func (apu *APU) UpdateFrameCounterMode(fiveStep bool) {
    apu.lock.Lock()
    defer apu.lock.Unlock()
    apu.updateFrameCounterMode(fiveStep)
}

func (apu *APU) updateFrameCounterMode(fiveStep bool) {
    apu.frameMode = fiveStep
    apu.pulses[0].UpdateFrameCounter(fiveStep)
    apu.pulses[1].UpdateFrameCounter(fiveStep)
    apu.triangle.UpdateFrameCounter(fiveStep)

    if apu.config.Debug > 0 {
        log.Printf("APU: frame counter mode 5-step=%v", fiveStep)
    }
}

func (apu *APU) FrameCounterMode() bool {
    apu.lock.Lock()
    defer apu.lock.Unlock()
    return apu.frameMode
}

/* the pulse setters take the pulse index, 0 or 1 */
func (apu *APU) routePulse(channel int, write ChannelWrite) error {
    target, err := pulseChannel(channel)
    if err != nil {
        return err
    }
    return apu.RouteWrite(target, write)
}

func (apu *APU) SetPulseDivider(channel int, reload uint16) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteDivider, Value: reload})
}

func (apu *APU) SetPulseDuty(channel int, duty float32) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteDuty, Duty: duty})
}

func (apu *APU) SetPulseEnabled(channel int, enabled bool) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteEnabled, Flag: enabled})
}

func (apu *APU) ConfigurePulseSweep(channel int, enabled bool, period byte, shift byte, negate bool) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteSweep, Flag: enabled, Period: period, Shift: shift, Negate: negate})
}

func (apu *APU) ConfigurePulseEnvelope(channel int, loop bool, constant bool, value byte) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteEnvelope, Flag: loop, Constant: constant, Value: uint16(value)})
}

func (apu *APU) SetPulseLengthHalt(channel int, halt bool) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteLengthHalt, Flag: halt})
}

func (apu *APU) LoadPulseLength(channel int, value uint16) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteLength, Value: value})
}

func (apu *APU) ResetPulse(channel int) error {
    return apu.routePulse(channel, ChannelWrite{Kind: WriteReset})
}

/* triangle writes cannot fail */
func (apu *APU) routeTriangle(write ChannelWrite) {
    apu.RouteWrite(ChannelTriangle, write)
}

func (apu *APU) SetTriangleDivider(reload uint16) {
    apu.routeTriangle(ChannelWrite{Kind: WriteDivider, Value: reload})
}

func (apu *APU) SetTriangleEnabled(enabled bool) {
    apu.routeTriangle(ChannelWrite{Kind: WriteEnabled, Flag: enabled})
}

/* control is both the linear counter halt and the length counter halt */
func (apu *APU) SetTriangleLinearControl(control bool, reload uint16) {
    apu.routeTriangle(ChannelWrite{Kind: WriteLinearControl, Flag: control, Value: reload})
}

func (apu *APU) ReloadTriangleLinear() {
    apu.routeTriangle(ChannelWrite{Kind: WriteLinearReload})
}

func (apu *APU) LoadTriangleLength(value uint16) {
    apu.routeTriangle(ChannelWrite{Kind: WriteLength, Value: value})
}

func (apu *APU) ResetTriangle() {
    apu.routeTriangle(ChannelWrite{Kind: WriteReset})
}

/* enable or disable any channel by its Channel value */
func (apu *APU) SetChannelEnabled(channel Channel, enabled bool) error {
    return apu.RouteWrite(channel, ChannelWrite{Kind: WriteEnabled, Flag: enabled})
}

func (apu *APU) ResetChannel(channel Channel) error {
    return apu.RouteWrite(channel, ChannelWrite{Kind: WriteReset})
}

/* true when the channel is gated: a pulse outputs 0 and the triangle's
 * sequencer stops, holding its current level
 */
func (apu *APU) Silent(channel Channel) (bool, error) {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    switch channel {
        case ChannelPulse1, ChannelPulse2:
            return apu.pulses[channel].Silent(), nil
        case ChannelTriangle:
            return apu.triangle.Silent(), nil
    }

    return false, fmt.Errorf("%w: %v", ErrInvalidChannel, channel)
}

func (apu *APU) Snapshot() State {
    apu.lock.Lock()
    defer apu.lock.Unlock()

    return State{
        Pulses: [NumPulseChannels]Pulse{
            apu.pulses[0].Copy(),
            apu.pulses[1].Copy(),
        },
        Triangle: apu.triangle.Copy(),
        FrameMode: apu.frameMode,
    }
}
