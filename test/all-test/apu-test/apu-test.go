package aputest

/* Reference scenarios rendered offline through the full driver stack (apu,
 * frame sequencer and a lua script) and checked against known properties
 * of the output.
 */

import (
    "fmt"
    "log"
    "math"

    apu "github.com/kazzmir/nesapu/lib"
    "github.com/kazzmir/nesapu/driver"
    "github.com/kazzmir/nesapu/script"
    "github.com/kazzmir/nesapu/sequencer"
    test_utils "github.com/kazzmir/nesapu/test/all-test/utils"
)

const SampleRate = 44100

type APUTest struct {
    Name string
    Script string
    Seconds float64
    Check func(samples []float32) (bool, string)
}

func render(source string, seconds float64, mixer apu.MixerMode) ([]float32, error) {
    config := apu.DefaultConfig()
    config.SampleRate = SampleRate
    config.Mixer = mixer

    chip, err := apu.MakeAPU(config)
    if err != nil {
        return nil, err
    }

    frameSequencer := sequencer.MakeFrameSequencer(chip)
    machine := script.MakeMachine(chip, frameSequencer)
    defer machine.Close()

    err = machine.LoadString(source)
    if err != nil {
        return nil, err
    }

    out := make([]float32, int(seconds * SampleRate))
    err = driver.MakeDriver(chip, frameSequencer, machine).Render(out)
    return out, err
}

/* rising edges from silence, which for a square wave is its frequency */
func risingEdges(samples []float32) int {
    count := 0
    for i := 1; i < len(samples); i++ {
        if samples[i - 1] == 0 && samples[i] > 0 {
            count += 1
        }
    }
    return count
}

/* index of the first sample after which the output stays at exactly 0 */
func silentFrom(samples []float32) int {
    last := len(samples)
    for last > 0 && samples[last - 1] == 0 {
        last -= 1
    }
    return last
}

func expectFrequency(low int, high int) func([]float32) (bool, string) {
    return func(samples []float32) (bool, string) {
        edges := risingEdges(samples)
        return edges >= low && edges <= high, fmt.Sprintf("%v cycles per second", edges)
    }
}

func Tests() []APUTest {
    return []APUTest{
        APUTest{
            Name: "pulse 260.7hz",
            Script: `
                write(0x4015, 0x01)
                write(0x4000, 0xbf)
                write(0x4002, 0xab)
                write(0x4003, 0x09)
            `,
            Seconds: 1,
            Check: expectFrequency(259, 262),
        },
        APUTest{
            Name: "pulse 12.5% duty",
            Script: `
                write(0x4015, 0x01)
                write(0x4000, 0x3f)
                write(0x4002, 0xab)
                write(0x4003, 0x09)
            `,
            Seconds: 1,
            Check: func(samples []float32) (bool, string) {
                high := 0
                for _, sample := range samples {
                    if sample > 0 {
                        high += 1
                    }
                }
                ratio := float64(high) / float64(len(samples))
                return math.Abs(ratio - 0.125) < 0.01, fmt.Sprintf("duty %.3f", ratio)
            },
        },
        APUTest{
            Name: "length counter",
            /* length index 0 is 10 half frames, 1/12th of a second */
            Script: `
                write(0x4015, 0x01)
                write(0x4000, 0x9f)
                write(0x4002, 0xab)
                write(0x4003, 0x01)
            `,
            Seconds: 0.5,
            Check: func(samples []float32) (bool, string) {
                end := float64(silentFrom(samples)) / SampleRate
                return end > 0.075 && end < 0.09, fmt.Sprintf("note ended at %.3fs", end)
            },
        },
        APUTest{
            Name: "triangle 32 steps",
            /* divider 0x1ab: 1789773 / (32 * 429) = 130.37hz */
            Script: `
                write(0x4015, 0x04)
                write(0x4008, 0xff)
                write(0x400a, 0xab)
                write(0x400b, 0x09)
            `,
            Seconds: 1,
            Check: func(samples []float32) (bool, string) {
                /* the bottom of the wave is two samples of level 0 */
                count := 0
                for i := 1; i < len(samples); i++ {
                    if samples[i - 1] > 0 && samples[i] == 0 {
                        count += 1
                    }
                }
                return count >= 129 && count <= 132, fmt.Sprintf("%v cycles per second", count)
            },
        },
        APUTest{
            Name: "sweep down",
            /* period 7, shift 7, adding to the divider lowers the pitch */
            Script: `
                write(0x4015, 0x01)
                write(0x4000, 0xbf)
                write(0x4001, 0xf7)
                write(0x4002, 0x00)
                write(0x4003, 0x0a)
            `,
            Seconds: 1,
            Check: func(samples []float32) (bool, string) {
                half := len(samples) / 2
                first := risingEdges(samples[:half])
                second := risingEdges(samples[half:])
                return first > second, fmt.Sprintf("%v then %v cycles", first, second)
            },
        },
        APUTest{
            Name: "disabled is silent",
            Script: `
                write(0x4000, 0xbf)
                write(0x4002, 0xab)
                write(0x4003, 0x09)
                write(0x4008, 0xff)
                write(0x400a, 0xab)
                write(0x400b, 0x09)
            `,
            Seconds: 0.5,
            Check: func(samples []float32) (bool, string) {
                end := silentFrom(samples)
                return end == 0, fmt.Sprintf("last sound at sample %v", end)
            },
        },
        APUTest{
            Name: "envelope decay",
            /* envelope period 0 decays over 15 quarter frames, 1/16th of a second */
            Script: `
                write(0x4015, 0x01)
                write(0x4000, 0x80)
                write(0x4002, 0xab)
                write(0x4003, 0x09)
            `,
            Seconds: 0.5,
            Check: func(samples []float32) (bool, string) {
                end := float64(silentFrom(samples)) / SampleRate
                return end > 0.05 && end < 0.075, fmt.Sprintf("envelope reached 0 at %.3fs", end)
            },
        },
    }
}

func Run(debug bool) (bool, error) {
    var results []test_utils.Result

    for _, mixer := range []apu.MixerMode{apu.MixerLinear, apu.MixerNonlinear} {
        for _, test := range Tests() {
            samples, err := render(test.Script, test.Seconds, mixer)
            if err != nil {
                return false, fmt.Errorf("%v: %w", test.Name, err)
            }

            passed, detail := test.Check(samples)
            name := fmt.Sprintf("%v (%v)", test.Name, mixer)
            if debug {
                if passed {
                    log.Printf(test_utils.Success(name))
                } else {
                    log.Printf(test_utils.Failure(name))
                }
            }

            results = append(results, test_utils.Result{
                Name: name,
                Passed: passed,
                Detail: detail,
            })
        }
    }

    fmt.Println(test_utils.Summary("apu", results))
    return test_utils.AllPassed(results), nil
}
