package animation

import (
	"iter"
	"slices"
	"strconv"
)

// ID identifies an animation in the catalog
type ID int

const (
	AlternatingFill ID = iota + 1
	ChannelWave
	Letters
	Palette
	HueWave
	Countdown
	VerticalLines
)

var catalog = map[ID]Animation{
	AlternatingFill: {ID: AlternatingFill, Name: "alternating-fill", frames: alternatingFill},
	ChannelWave:     {ID: ChannelWave, Name: "channel-wave", frames: channelWave},
	Letters:         {ID: Letters, Name: "letters", frames: sequence(letters)},
	Palette:         {ID: Palette, Name: "palette", frames: sequence(palette)},
	HueWave:         {ID: HueWave, Name: "hue-wave", frames: hueWave},
	Countdown:       {ID: Countdown, Name: "countdown", frames: countdown},
	VerticalLines:   {ID: VerticalLines, Name: "vertical-lines", frames: sequence(verticalLines)},
}

// Lookup returns the animation with the specified ID
func Lookup(id ID) (Animation, bool) {
	a, ok := catalog[id]
	return a, ok
}

// All returns the catalog, ordered by ID
func All() iter.Seq[Animation] {
	ids := make([]ID, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return func(yield func(Animation) bool) {
		for _, id := range ids {
			if !yield(catalog[id]) {
				return
			}
		}
	}
}

func (id ID) String() string {
	if a, ok := catalog[id]; ok {
		return a.Name
	}
	return "animation-" + strconv.Itoa(int(id))
}
