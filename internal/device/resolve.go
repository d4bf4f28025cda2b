package device

import (
	"github.com/linuxmatters/voiceactor/internal/audio"
)

// Resolve maps requested device names to device indexes.
//
// Names are processed in request order. For each name the inventory is
// scanned in ascending index order and the first device whose name is equal,
// whose default rate matches the clip, and which has enough output channels
// is taken. Once a name has been accepted, later devices or repeated requests
// with that name are ignored. Names with no compatible device are skipped
// without error, so the result may be empty; the only error is a failed
// inventory query.
func Resolve(names []string, format audio.Format, inv Inventory) ([]int, error) {
	devices, err := Snapshot(inv)
	if err != nil {
		return nil, err
	}

	accepted := make(map[string]bool, len(names))
	var indexes []int

	for _, name := range names {
		if accepted[name] {
			continue
		}

		found := false
		for _, d := range devices {
			if d.Name != name {
				continue
			}
			if !d.Supports(format) {
				log.Debugf("Skipping %v: clip needs %d Hz with %d channels",
					d, format.FrameRate, format.Channels)
				continue
			}

			log.Infof("Found device %q: index %d, default sample rate %d Hz, %d output channels",
				d.Name, d.Index, d.SampleRate(), d.MaxOutputChannels)
			accepted[name] = true
			indexes = append(indexes, d.Index)
			found = true
			break
		}

		if !found {
			log.Infof("No compatible device named %q", name)
		}
	}

	return indexes, nil
}
