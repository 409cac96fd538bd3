// Package romock provides a hand-written gomock mock of blockio.Device,
// in the shape mockgen would generate, grounded on aligator-GoFAT's
// gomock.Controller-based test usage.
package romock

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/quietdrive/rofs/blockio"
)

// MockDevice is a mock of the blockio.Device interface.
type MockDevice struct {
	ctrl     *gomock.Controller
	recorder *MockDeviceMockRecorder
}

// MockDeviceMockRecorder is the mock recorder for MockDevice.
type MockDeviceMockRecorder struct {
	mock *MockDevice
}

// NewMockDevice creates a new mock instance.
func NewMockDevice(ctrl *gomock.Controller) *MockDevice {
	mock := &MockDevice{ctrl: ctrl}
	mock.recorder = &MockDeviceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDevice) EXPECT() *MockDeviceMockRecorder {
	return m.recorder
}

var _ blockio.Device = (*MockDevice)(nil)

// ReadExactAt mocks base method.
func (m *MockDevice) ReadExactAt(off int64, buf []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadExactAt", off, buf)
	ret0, _ := ret[0].(error)
	return ret0
}

// ReadExactAt indicates an expected call of ReadExactAt.
func (mr *MockDeviceMockRecorder) ReadExactAt(off, buf interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadExactAt", reflect.TypeOf((*MockDevice)(nil).ReadExactAt), off, buf)
}

// Size mocks base method.
func (m *MockDevice) Size() int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size")
	ret0, _ := ret[0].(int64)
	return ret0
}

// Size indicates an expected call of Size.
func (mr *MockDeviceMockRecorder) Size() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockDevice)(nil).Size))
}
