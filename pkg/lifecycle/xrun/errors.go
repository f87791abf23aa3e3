package xrun

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSignal 收到终止信号，[SignalError] 可通过 errors.Is 匹配。
	ErrSignal = errors.New("received signal")

	// ErrNilFunc 服务函数为 nil。
	ErrNilFunc = errors.New("xrun: nil function")

	// ErrNilService 服务为 nil。
	ErrNilService = errors.New("xrun: nil service")
)

// SignalError 因系统信号退出时的取消原因。
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Is 使 errors.Is(err, ErrSignal) 成立。
func (e *SignalError) Is(target error) bool {
	return target == ErrSignal
}

func (e *SignalError) Unwrap() error {
	return ErrSignal
}
