package lib

const EnvelopeMax = 15

/* https://www.nesdev.org/wiki/APU_Envelope */
type EnvelopeGenerator struct {
    Divider Divider
    Loop bool
    ConstantVolume bool
    /* divider period, and also the volume when ConstantVolume is set */
    ReloadValue byte
    Decay byte
}

func MakeEnvelopeGenerator() EnvelopeGenerator {
    return EnvelopeGenerator{
        Decay: EnvelopeMax,
    }
}

func (envelope *EnvelopeGenerator) Volume() byte {
    if envelope.ConstantVolume {
        return envelope.ReloadValue
    }

    return envelope.Decay
}

/* restarts the decay. only a timer-high write does this, not Configure */
func (envelope *EnvelopeGenerator) Reset() {
    envelope.Divider.Reset()
    envelope.Decay = EnvelopeMax
}

func (envelope *EnvelopeGenerator) Configure(loop bool, constant bool, value byte){
    if value > EnvelopeMax {
        value = EnvelopeMax
    }
    envelope.Loop = loop
    envelope.ConstantVolume = constant
    envelope.ReloadValue = value
    envelope.Divider.ClockPeriod = uint16(value)
}

func (envelope *EnvelopeGenerator) ClockQuarterFrame() {
    if !envelope.Divider.Clock() {
        return
    }

    if envelope.Decay > 0 {
        envelope.Decay -= 1
    } else if envelope.Loop {
        envelope.Decay = EnvelopeMax
    }
}
