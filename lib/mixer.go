package lib

import (
    "fmt"
)

type MixerMode int
const (
    MixerLinear MixerMode = iota
    MixerNonlinear
)

func (mode MixerMode) String() string {
    switch mode {
        case MixerLinear: return "linear"
        case MixerNonlinear: return "nonlinear"
    }

    return fmt.Sprintf("mixer(%d)", int(mode))
}

func ParseMixerMode(name string) (MixerMode, error) {
    switch name {
        case "linear", "": return MixerLinear, nil
        case "nonlinear": return MixerNonlinear, nil
    }

    return MixerLinear, fmt.Errorf("%w: unknown mixer mode '%v'", ErrInvalidConfig, name)
}

/* https://www.nesdev.org/wiki/APU_Mixer linear approximation, one weight per
 * channel in channel order: pulse 1, pulse 2, triangle
 */
var LinearWeights [NumChannels]float32 = [NumChannels]float32{0.00752, 0.00752, 0.00851}

/* pulse1 + pulse2 ranges over 0-30, triangle over 0-15 */
var pulseMixTable [31]float32
var triangleMixTable [16]float32

func init(){
    for i := 1; i < len(pulseMixTable); i++ {
        pulseMixTable[i] = float32(95.88 / (8128.0 / float64(i) + 100))
    }

    for i := 1; i < len(triangleMixTable); i++ {
        triangleMixTable[i] = float32(159.79 / (1.0 / (float64(i) / 8227.0) + 100))
    }
}

func clampLevel(value float32, maximum int) int {
    level := int(value)
    if level < 0 {
        return 0
    }
    if level > maximum {
        return maximum
    }
    return level
}

/* combine the three channel outputs (each 0-15) into one sample in [0, 1).
 * Three silent channels always produce exactly 0.
 */
func Mix(mode MixerMode, pulse1 float32, pulse2 float32, triangle float32) float32 {
    switch mode {
        case MixerNonlinear:
            pulse := clampLevel(pulse1, 15) + clampLevel(pulse2, 15)
            return pulseMixTable[pulse] + triangleMixTable[clampLevel(triangle, 15)]
        default:
            return LinearWeights[0] * pulse1 + LinearWeights[1] * pulse2 + LinearWeights[2] * triangle
    }
}
