package aht10

type NotCalibratedError struct{}

func (e *NotCalibratedError) Error() string {
	return "AHT10 is not calibrated."
}

type MeasurementIncompleteError struct{}

func (e *MeasurementIncompleteError) Error() string {
	return "Measurement incomplete. AHT10 was still busy when read."
}
