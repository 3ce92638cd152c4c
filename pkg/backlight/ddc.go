package backlight

// DDC reserves the external monitor backend. DDC/CI is not implemented, so
// every operation fails with an UnsupportedError.
type DDC struct{}

func (DDC) Kind() Kind { return ExternalDDC }

func (DDC) ReadMax(Device) (int, error) {
	return 0, &UnsupportedError{Kind: ExternalDDC, Op: "read max brightness"}
}

func (DDC) ReadCurrent(Device) (int, error) {
	return 0, &UnsupportedError{Kind: ExternalDDC, Op: "read brightness"}
}

func (DDC) WriteCurrent(Device, int) error {
	return &UnsupportedError{Kind: ExternalDDC, Op: "write brightness"}
}
