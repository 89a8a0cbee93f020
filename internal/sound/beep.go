package sound

import (
	"fmt"
	"math"

	"github.com/jfreymuth/pulse"
)

const (
	beepSampleRate  = 16000
	beepFrequencyHz = 800.0
	beepDurationSec = 0.2
	beepVolume      = 0.2
)

var beepPCM = synthesizeBeep()

// playSynthBeep streams the synthesized beep through the audio server.
func playSynthBeep() error {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("ccnudge"),
		pulse.ClientApplicationIconName("dialog-information"),
	)
	if err != nil {
		return fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	cursor := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if cursor >= len(beepPCM) {
			return 0, pulse.EndOfData
		}

		n := copy(buf, beepPCM[cursor:])
		cursor += n
		if cursor >= len(beepPCM) {
			return n, pulse.EndOfData
		}
		return n, nil
	})

	stream, err := client.NewPlayback(
		reader,
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(beepSampleRate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName("ccnudge beep"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("play beep stream: %w", err)
	}

	return nil
}

// synthesizeBeep renders one attention tone with a short attack/release
// envelope to avoid clicks.
func synthesizeBeep() []int16 {
	n := int(math.Round(beepDurationSec * beepSampleRate))
	ramp := beepSampleRate / 200 // 5ms
	if ramp < 1 {
		ramp = 1
	}

	pcm := make([]int16, n)
	for i := 0; i < n; i++ {
		envelope := 1.0
		if i < ramp {
			envelope = float64(i) / float64(ramp)
		}
		if tail := n - i - 1; tail < ramp {
			release := float64(tail) / float64(ramp)
			if release < envelope {
				envelope = release
			}
		}
		t := float64(i) / beepSampleRate
		sample := math.Sin(2 * math.Pi * beepFrequencyHz * t)
		pcm[i] = int16(math.Round(sample * beepVolume * envelope * 32767))
	}
	return pcm
}
