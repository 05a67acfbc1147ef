// Package native implements gpucore.ComputeDevice on top of gogpu/wgpu.
//
// Generated WGSL is compiled to SPIR-V by gogpu/naga, which also acts as the
// validator: a program naga rejects fails with gpuprogram.ErrCompilationFailure
// before any HAL object is created.
//
// # Modes
//
// A Device wraps a hal.Device obtained from the application, either directly
// with NewDevice or from a gpucontext.DeviceProvider with
// NewDeviceFromProvider. Without a HAL device (NewOffline) the Device still
// compiles and validates every shader but returns placeholder pipeline IDs,
// which lets tools and tests run the whole generation path on machines
// without a GPU. OpenStandalone opens a Vulkan device of its own for
// compute-only use.
//
// # Registration
//
// Importing the package registers two backends: "native" creates offline
// devices and "vulkan" opens a standalone device.
//
// # Usage
//
//	dev, err := native.NewDeviceFromProvider(provider, native.WithShaderF16(true))
//	if err != nil {
//	    return err
//	}
//	defer dev.Destroy()
//
//	programs, err := pipeline.NewCache(dev)
package native
