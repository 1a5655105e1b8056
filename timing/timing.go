package timing

// DurToTicks converts a signed duration in seconds into MIDI ticks at the
// given tempo. The result is truncated toward zero, so negative durations
// produce negative tick counts.
func DurToTicks(seconds, bpm float64, ticksPerBeat int) int {
	return int(seconds * float64(ticksPerBeat) * bpm / 60)
}

func TicksToDur(ticks int, bpm float64, ticksPerBeat int) float64 {
	return float64(ticks) * 60 / (bpm * float64(ticksPerBeat))
}
