package lib

import (
    "encoding/binary"
    "math"
)

/* An io.Reader of little endian float32 frames pulled straight from the apu,
 * suitable for ebiten's NewPlayerF32 (2 channels) or an oto player. Every
 * Read ticks the apu once per frame and writes the sample into each channel.
 */
type AudioStream struct {
    apu *APU
    channels int
    /* frames produced so far */
    Frames uint64
}

func MakeAudioStream(apu *APU) *AudioStream {
    return &AudioStream{
        apu: apu,
        channels: apu.Config().Channels,
    }
}

func (stream *AudioStream) Channels() int {
    return stream.channels
}

func (stream *AudioStream) Read(data []byte) (int, error) {
    frameSize := 4 * stream.channels
    frames := len(data) / frameSize

    offset := 0
    for i := 0; i < frames; i++ {
        bits := math.Float32bits(stream.apu.Tick())
        for channel := 0; channel < stream.channels; channel++ {
            binary.LittleEndian.PutUint32(data[offset:], bits)
            offset += 4
        }
    }

    stream.Frames += uint64(frames)
    return offset, nil
}
