package routine

import (
	"strings"
	"time"
)

func sec(n int) time.Duration { return time.Duration(n) * time.Second }

// Builtin returns the routines shipped with tally.
func Builtin() []Routine {
	return []Routine{
		{
			Name: "morning",
			Exercises: []Exercise{
				{"Neck rolls", sec(30)},
				{"Cat-cow", sec(45)},
				{"World's greatest stretch", sec(60)},
				{"Hip circles", sec(45)},
				{"Deep squat hold", sec(60)},
			},
		},
		{
			Name: "hips",
			Exercises: []Exercise{
				{"90/90 switches", sec(60)},
				{"Pigeon (left)", sec(45)},
				{"Pigeon (right)", sec(45)},
				{"Couch stretch (left)", sec(45)},
				{"Couch stretch (right)", sec(45)},
			},
		},
		{
			Name: "desk",
			Exercises: []Exercise{
				{"Chin tucks", sec(30)},
				{"Thoracic extensions", sec(45)},
				{"Wrist circles", sec(30)},
				{"Standing hamstring stretch", sec(45)},
			},
		},
	}
}

// Find looks a builtin routine up by name.
func Find(name string) (Routine, bool) {
	for _, r := range Builtin() {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, true
		}
	}
	return Routine{}, false
}
