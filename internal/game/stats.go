package game

import (
	"gonum.org/v1/gonum/stat"
)

// FrameStats summarises the frames held in the frame tap.
type FrameStats struct {
	Frames int     // samples summarised
	FPS    float64 // 1 / mean frame time, 0 if unknown
	MeanDt float64 // seconds
	StdDt  float64 // seconds
	Alive  int     // live particles after the latest frame
}

func summarize(samples []frameSample) FrameStats {
	var st FrameStats
	if len(samples) == 0 {
		return st
	}
	st.Alive = samples[len(samples)-1].alive

	// Zero-length frames (the first one, clock anomalies) carry no timing.
	dts := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.dt > 0 {
			dts = append(dts, s.dt)
		}
	}
	st.Frames = len(dts)
	switch len(dts) {
	case 0:
		return st
	case 1:
		st.MeanDt = dts[0]
	default:
		st.MeanDt, st.StdDt = stat.MeanStdDev(dts, nil)
	}
	st.FPS = 1 / st.MeanDt
	return st
}
