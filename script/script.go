package script

import (
    "context"
    "fmt"
    "log"

    apu "github.com/kazzmir/nesapu/lib"
    "github.com/kazzmir/nesapu/sequencer"

    lua "github.com/yuin/gopher-lua"
)

/* the lua function the host calls once per 60hz frame */
const FrameFunction = "frame"

/* A lua interpreter whose globals drive one apu. Scripts call flat
 * functions such as pulse_divider(0, 427) or write(0x4015, 0x0f), and
 * define frame(n) which is called once per video frame like an nsf play
 * routine.
 *
 * Channel numbers are the same as the apu's: 0 and 1 for the pulses.
 */
type Machine struct {
    state *lua.LState
    chip *apu.APU
    sequencer *sequencer.FrameSequencer
    Debug int
}

/* sequencer may be nil, in which case frame counter writes only update the apu */
func MakeMachine(chip *apu.APU, frameSequencer *sequencer.FrameSequencer) *Machine {
    machine := &Machine{
        state: lua.NewState(),
        chip: chip,
        sequencer: frameSequencer,
    }

    machine.register()
    return machine
}

func (machine *Machine) Close(){
    machine.state.Close()
}

/* cancel a running script when the context is done */
func (machine *Machine) SetContext(ctx context.Context){
    machine.state.SetContext(ctx)
}

func (machine *Machine) LoadFile(path string) error {
    err := machine.state.DoFile(path)
    if err != nil {
        return fmt.Errorf("could not load script %v: %w", path, err)
    }
    return nil
}

func (machine *Machine) LoadString(source string) error {
    err := machine.state.DoString(source)
    if err != nil {
        return fmt.Errorf("could not load script: %w", err)
    }
    return nil
}

func (machine *Machine) HasFrame() bool {
    return machine.state.GetGlobal(FrameFunction).Type() == lua.LTFunction
}

/* run the script's frame function, a script without one is just static register setup */
func (machine *Machine) Frame(frame uint64) error {
    function := machine.state.GetGlobal(FrameFunction)
    if function.Type() != lua.LTFunction {
        return nil
    }

    return machine.state.CallByParam(lua.P{
        Fn: function,
        NRet: 0,
        Protect: true,
    }, lua.LNumber(frame))
}

func (machine *Machine) raise(state *lua.LState, err error) int {
    if err != nil {
        state.RaiseError("%v", err)
    }
    return 0
}

/* integer argument n, raising a lua error unless it is within minimum-maximum */
func checkRange(state *lua.LState, n int, minimum int, maximum int) int {
    value := state.CheckInt(n)
    if value < minimum || value > maximum {
        state.ArgError(n, fmt.Sprintf("value %v out of range %v-%v", value, minimum, maximum))
    }
    return value
}

func (machine *Machine) writeRegister(address uint16, value byte) error {
    if machine.Debug > 0 {
        log.Printf("Script: write 0x%x = 0x%x", address, value)
    }

    if address == apu.APUFrameCounter && machine.sequencer != nil {
        machine.sequencer.WriteFrameCounter(value)
        return nil
    }

    return machine.chip.WriteRegister(address, value)
}

func (machine *Machine) register(){
    chip := machine.chip

    functions := map[string]lua.LGFunction{
        "pulse_divider": func(state *lua.LState) int {
            return machine.raise(state, chip.SetPulseDivider(state.CheckInt(1), uint16(checkRange(state, 2, 0, apu.MaximumTimerReload))))
        },
        "pulse_duty": func(state *lua.LState) int {
            return machine.raise(state, chip.SetPulseDuty(state.CheckInt(1), float32(state.CheckNumber(2))))
        },
        "pulse_enable": func(state *lua.LState) int {
            return machine.raise(state, chip.SetPulseEnabled(state.CheckInt(1), state.CheckBool(2)))
        },
        "pulse_envelope": func(state *lua.LState) int {
            return machine.raise(state, chip.ConfigurePulseEnvelope(state.CheckInt(1), state.CheckBool(2), state.CheckBool(3), byte(checkRange(state, 4, 0, apu.EnvelopeMax))))
        },
        "pulse_sweep": func(state *lua.LState) int {
            return machine.raise(state, chip.ConfigurePulseSweep(state.CheckInt(1), state.CheckBool(2), byte(checkRange(state, 3, 0, 7)), byte(checkRange(state, 4, 0, 7)), state.CheckBool(5)))
        },
        "pulse_length": func(state *lua.LState) int {
            return machine.raise(state, chip.LoadPulseLength(state.CheckInt(1), uint16(checkRange(state, 2, 0, 0xffff))))
        },
        "pulse_halt": func(state *lua.LState) int {
            return machine.raise(state, chip.SetPulseLengthHalt(state.CheckInt(1), state.CheckBool(2)))
        },
        "pulse_reset": func(state *lua.LState) int {
            return machine.raise(state, chip.ResetPulse(state.CheckInt(1)))
        },
        "triangle_divider": func(state *lua.LState) int {
            chip.SetTriangleDivider(uint16(checkRange(state, 1, 0, apu.MaximumTimerReload)))
            return 0
        },
        "triangle_enable": func(state *lua.LState) int {
            chip.SetTriangleEnabled(state.CheckBool(1))
            return 0
        },
        "triangle_linear": func(state *lua.LState) int {
            chip.SetTriangleLinearControl(state.CheckBool(1), uint16(checkRange(state, 2, 0, apu.LinearMaximum)))
            return 0
        },
        "triangle_reload": func(state *lua.LState) int {
            chip.ReloadTriangleLinear()
            return 0
        },
        "triangle_length": func(state *lua.LState) int {
            chip.LoadTriangleLength(uint16(checkRange(state, 1, 0, 0xffff)))
            return 0
        },
        "triangle_reset": func(state *lua.LState) int {
            chip.ResetTriangle()
            return 0
        },
        "write": func(state *lua.LState) int {
            address := checkRange(state, 1, 0, 0xffff)
            value := checkRange(state, 2, 0, 0xff)
            return machine.raise(state, machine.writeRegister(uint16(address), byte(value)))
        },
        "status": func(state *lua.LState) int {
            state.Push(lua.LNumber(chip.ReadStatus()))
            return 1
        },
        "frame_mode": func(state *lua.LState) int {
            fiveStep := state.CheckBool(1)
            if machine.sequencer != nil {
                machine.sequencer.SetMode(fiveStep, machine.sequencer.InterruptInhibit)
            } else {
                chip.UpdateFrameCounterMode(fiveStep)
            }
            return 0
        },
        "length": func(state *lua.LState) int {
            value, err := apu.LengthFromIndex(byte(checkRange(state, 1, 0, len(apu.LengthTable) - 1)))
            if err != nil {
                return machine.raise(state, err)
            }
            state.Push(lua.LNumber(value))
            return 1
        },
    }

    for name, function := range functions {
        machine.state.SetGlobal(name, machine.state.NewFunction(function))
    }
}
