// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device bootstrap errors.
var (
	// ErrBackendUnavailable is returned when the requested HAL backend is
	// not compiled in or not supported on this platform.
	ErrBackendUnavailable = errors.New("gpu: backend not available")

	// ErrNoAdapter is returned when the instance exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// hal.Device and hal.Queue.
	ErrProviderNotHAL = errors.New("gpu: provider does not expose HAL types")
)

// InstanceFactory creates HAL instances. Both registered backends
// (hal.GetBackend) and the noop API satisfy it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Device is an opened logical device with its queue. When the device was
// shared by a host, Close leaves it alive.
type Device struct {
	Device  hal.Device
	Queue   hal.Queue
	Adapter string

	instance hal.Instance
	external bool
}

// BackendFactory returns the registered HAL backend for kind.
func BackendFactory(kind gputypes.Backend) (InstanceFactory, error) {
	backend, ok := hal.GetBackend(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, kind)
	}
	return backend, nil
}

// OpenDevice creates an instance from factory, picks a discrete or
// integrated GPU when one is exposed (falling back to the first adapter)
// and opens a device with default limits. The call blocks until the
// device is ready.
func OpenDevice(factory InstanceFactory) (*Device, error) {
	if factory == nil {
		return nil, ErrBackendUnavailable
	}
	instance, err := factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("GPU adapter selected", "adapter", selected.Info.Name)
	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Adapter:  selected.Info.Name,
		instance: instance,
	}, nil
}

// DeviceFromProvider borrows the device and queue of a host provider
// (for example gogpu's GPUContextProvider). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func DeviceFromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}
	slogger().Info("using shared GPU device")
	return &Device{Device: device, Queue: queue, Adapter: "shared", external: true}, nil
}

// Shared reports whether the device belongs to a host.
func (d *Device) Shared() bool {
	return d.external
}

// Close destroys the device and instance if this package created them.
// Safe to call multiple times.
func (d *Device) Close() {
	if d == nil {
		return
	}
	if !d.external && d.Device != nil {
		d.Device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.Device = nil
	d.Queue = nil
}
