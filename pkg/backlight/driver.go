package backlight

// Driver services the devices of one Kind.
type Driver interface {
	Kind() Kind
	ReadMax(dev Device) (int, error)
	ReadCurrent(dev Device) (int, error)
	WriteCurrent(dev Device, value int) error
}
