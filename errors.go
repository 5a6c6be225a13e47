package cc1101

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Device errors surfaced by the driver or by session logic. Configuration
// validation errors live in the config package; everything here comes back
// from the external resource.
var (
	// ErrNoDevice means the device node does not exist.
	ErrNoDevice = errors.New("cc1101: no such device")
	// ErrHandleClone means the session's retained handle could not be
	// reused, typically because the session was closed.
	ErrHandleClone = errors.New("cc1101: device handle unavailable")
	// ErrInvalidRequest means the driver rejected the control request
	// itself, usually a library/driver mismatch.
	ErrInvalidRequest = errors.New("cc1101: invalid control request")
	// ErrVersionMismatch means the driver speaks a different protocol
	// version. The session is unusable.
	ErrVersionMismatch = errors.New("cc1101: driver protocol version mismatch")
	// ErrNoRXConfig means Receive was called before any receive
	// configuration was applied.
	ErrNoRXConfig = errors.New("cc1101: no receive config set")
	// ErrBusy means the device is exclusively held elsewhere.
	ErrBusy = errors.New("cc1101: device busy")
	// ErrCopy means a data copy between user and kernel space faulted.
	ErrCopy = errors.New("cc1101: data copy fault")
	// ErrInvalidConfig means the driver rejected a pushed configuration.
	ErrInvalidConfig = errors.New("cc1101: config rejected by driver")
	// ErrOutOfMemory means the driver could not allocate.
	ErrOutOfMemory = errors.New("cc1101: driver out of memory")
	// ErrBufferEmpty means no buffered packet is available. Receive
	// consumes it internally as the end-of-data condition.
	ErrBufferEmpty = errors.New("cc1101: receive buffer empty")
	// ErrPacketSize means a payload or read size violates the driver's
	// packet size limits.
	ErrPacketSize = errors.New("cc1101: packet size violation")
	// ErrUnknown covers every error code with no defined meaning.
	ErrUnknown = errors.New("cc1101: unknown device error")
)

// errno extracts the OS error code from err, if any.
func errno(err error) (unix.Errno, bool) {
	var e unix.Errno
	ok := errors.As(err, &e)
	return e, ok
}

// wrap ties a domain error to the OS-level cause for diagnostics while
// keeping errors.Is matching on the sentinel.
func wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %v", sentinel, cause)
}

// classifyOpenError maps errors from opening the device node.
func classifyOpenError(err error) error {
	if err == nil {
		return nil
	}
	switch e, ok := errno(err); {
	case !ok:
		return wrap(ErrUnknown, err)
	case e == unix.EBUSY:
		return wrap(ErrBusy, err)
	case e == unix.ENOENT, e == unix.ENODEV, e == unix.ENXIO:
		return wrap(ErrNoDevice, err)
	default:
		return wrap(ErrUnknown, err)
	}
}

// classifyRequestError maps errors from control requests.
func classifyRequestError(err error) error {
	if err == nil {
		return nil
	}
	switch e, ok := errno(err); {
	case !ok:
		return wrap(ErrUnknown, err)
	case e == unix.EIO:
		return wrap(ErrInvalidRequest, err)
	case e == unix.EFAULT:
		return wrap(ErrCopy, err)
	case e == unix.EINVAL:
		return wrap(ErrInvalidConfig, err)
	case e == unix.ENOMEM:
		return wrap(ErrOutOfMemory, err)
	default:
		return wrap(ErrUnknown, err)
	}
}

// classifyWriteError maps errors from the transmit write.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	switch e, ok := errno(err); {
	case !ok:
		return wrap(ErrUnknown, err)
	case e == unix.EINVAL:
		return wrap(ErrPacketSize, err)
	case e == unix.ENOMEM:
		return wrap(ErrOutOfMemory, err)
	case e == unix.EFAULT:
		return wrap(ErrCopy, err)
	default:
		return wrap(ErrUnknown, err)
	}
}

// classifyReadError maps errors from the packet read. ENOMSG is the
// driver's "no more buffered data" signal.
func classifyReadError(err error) error {
	if err == nil {
		return nil
	}
	switch e, ok := errno(err); {
	case !ok:
		return wrap(ErrUnknown, err)
	case e == unix.ENOMSG:
		return wrap(ErrBufferEmpty, err)
	case e == unix.EMSGSIZE:
		return wrap(ErrPacketSize, err)
	case e == unix.EBUSY:
		return wrap(ErrBusy, err)
	case e == unix.EINVAL:
		return wrap(ErrInvalidConfig, err)
	case e == unix.EFAULT:
		return wrap(ErrCopy, err)
	default:
		return wrap(ErrUnknown, err)
	}
}
