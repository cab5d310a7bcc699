package util

import (
    "bufio"
    "encoding/binary"
    "fmt"
    "io"
    "math"
)

const wavHeaderSize = 44

/* Streams 16-bit pcm samples into a wav file. The riff and data sizes are
 * unknown until the end, so Close seeks back and fills them in.
 */
type WavWriter struct {
    out io.WriteSeeker
    buffer *bufio.Writer
    SampleRate int
    Channels int
    /* samples written so far, across all channels */
    Samples uint32
}

func MakeWavWriter(out io.WriteSeeker, sampleRate int, channels int) (*WavWriter, error) {
    if sampleRate <= 0 || channels <= 0 {
        return nil, fmt.Errorf("invalid wav format: rate %v channels %v", sampleRate, channels)
    }

    writer := &WavWriter{
        out: out,
        buffer: bufio.NewWriter(out),
        SampleRate: sampleRate,
        Channels: channels,
    }

    err := writer.writeHeader(0)
    if err != nil {
        return nil, err
    }

    return writer, nil
}

func (writer *WavWriter) writeHeader(dataSize uint32) error {
    var header [wavHeaderSize]byte
    blockAlign := uint16(writer.Channels * 2)

    copy(header[0:], "RIFF")
    binary.LittleEndian.PutUint32(header[4:], wavHeaderSize - 8 + dataSize)
    copy(header[8:], "WAVE")
    copy(header[12:], "fmt ")
    binary.LittleEndian.PutUint32(header[16:], 16)
    /* pcm */
    binary.LittleEndian.PutUint16(header[20:], 1)
    binary.LittleEndian.PutUint16(header[22:], uint16(writer.Channels))
    binary.LittleEndian.PutUint32(header[24:], uint32(writer.SampleRate))
    binary.LittleEndian.PutUint32(header[28:], uint32(writer.SampleRate) * uint32(blockAlign))
    binary.LittleEndian.PutUint16(header[32:], blockAlign)
    binary.LittleEndian.PutUint16(header[34:], 16)
    copy(header[36:], "data")
    binary.LittleEndian.PutUint32(header[40:], dataSize)

    _, err := writer.buffer.Write(header[:])
    if err != nil {
        return fmt.Errorf("could not write wav header: %w", err)
    }
    return nil
}

/* samples are interleaved by channel and expected in [-1, 1], anything
 * outside is clipped
 */
func (writer *WavWriter) Write(samples []float32) error {
    var pcm [2]byte
    for _, sample := range samples {
        value := math.Max(-1, math.Min(1, float64(sample)))
        binary.LittleEndian.PutUint16(pcm[:], uint16(int16(value * math.MaxInt16)))
        _, err := writer.buffer.Write(pcm[:])
        if err != nil {
            return err
        }
    }

    writer.Samples += uint32(len(samples))
    return nil
}

func (writer *WavWriter) Close() error {
    err := writer.buffer.Flush()
    if err != nil {
        return err
    }

    _, err = writer.out.Seek(0, io.SeekStart)
    if err != nil {
        return fmt.Errorf("could not rewrite wav header: %w", err)
    }

    writer.buffer.Reset(writer.out)
    err = writer.writeHeader(writer.Samples * 2)
    if err != nil {
        return err
    }

    err = writer.buffer.Flush()
    if err != nil {
        return err
    }

    _, err = writer.out.Seek(0, io.SeekEnd)
    return err
}
