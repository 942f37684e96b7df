//go:build !windows && (!unix || android)

package vmem

func osReserve(int) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}

func osAdvise([]byte, AccessPattern) error {
	return nil
}
