//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// openCLWaveSolver steps one tier's wave field on an OpenCL device. Each
// allocated tier owns its own solver so device-side buffers stay warm between
// frames.
type openCLWaveSolver struct {
	context         *cl.Context
	queue           *cl.CommandQueue
	program         *cl.Program
	kernel          *cl.Kernel
	clearLandKernel *cl.Kernel
	boundaryRowK    *cl.Kernel
	boundaryColK    *cl.Kernel
	currBuf         *cl.MemObject
	prevBuf         *cl.MemObject
	nextBuf         *cl.MemObject
	landIndexBuf    *cl.MemObject
	width           int
	height          int
	landIndices     []int32
	landCount       int
	landSynced      bool
	deviceName      string
	coldStart       bool
	boundCurr       *cl.MemObject
	boundPrev       *cl.MemObject
	boundNext       *cl.MemObject
}

const waveKernelSource = `__kernel void wave_step(
    const int width,
    const int height,
    const float damp,
    const float speed,
    __global const float* curr,
    __global const float* prev,
    __global float* next_buffer)
{
    int idx = get_global_id(0);
    int size = width * height;
    if (idx >= size) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    if (x <= 0 || x >= width - 1 || y <= 0 || y >= height - 1) {
        return;
    }
    float center = curr[idx];
    float laplacian = curr[idx - 1] + curr[idx + 1] + curr[idx - width] + curr[idx + width] - 4.0f * center;
    next_buffer[idx] = ((2.0f * center - prev[idx]) + speed * laplacian) * damp;
}

__kernel void clear_land(
    __global float* buffer,
    __global const int* land_indices,
    const int land_count)
{
    int gid = get_global_id(0);
    if (gid >= land_count) {
        return;
    }
    buffer[land_indices[gid]] = 0.0f;
}

__kernel void apply_boundary_rows(
    const int width,
    const int height,
    const float reflect,
    __global float* buffer)
{
    int x = get_global_id(0);
    if (x >= width) {
        return;
    }
    int last_row = height - 1;
    buffer[x] = -buffer[width + x] * reflect;
    buffer[last_row * width + x] = -buffer[(last_row - 1) * width + x] * reflect;
}

__kernel void apply_boundary_cols(
    const int width,
    const int height,
    const float reflect,
    __global float* buffer)
{
    int y = get_global_id(0) + 1;
    if (y >= height - 1) {
        return;
    }
    int base = y * width;
    buffer[base] = -buffer[base + 1] * reflect;
    buffer[base + width - 1] = -buffer[base + width - 2] * reflect;
}`

// pickOpenCLDevice returns the first GPU device found, falling back to CPU
// devices before giving up.
func pickOpenCLDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	for _, deviceType := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(deviceType)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

func newOpenCLWaveSolver(width, height int) (*openCLWaveSolver, error) {
	device, err := pickOpenCLDevice()
	if err != nil {
		return nil, err
	}
	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	solver := &openCLWaveSolver{
		context:    context,
		width:      width,
		height:     height,
		deviceName: device.Name(),
		coldStart:  true,
	}
	if solver.queue, err = context.CreateCommandQueue(device, 0); err != nil {
		solver.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if solver.program, err = context.CreateProgramWithSource([]string{waveKernelSource}); err != nil {
		solver.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err = solver.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		solver.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if solver.kernel, err = solver.program.CreateKernel("wave_step"); err != nil {
		solver.Close()
		return nil, fmt.Errorf("creating wave kernel: %w", err)
	}
	if solver.clearLandKernel, err = solver.program.CreateKernel("clear_land"); err != nil {
		solver.Close()
		return nil, fmt.Errorf("creating land kernel: %w", err)
	}
	if solver.boundaryRowK, err = solver.program.CreateKernel("apply_boundary_rows"); err != nil {
		solver.Close()
		return nil, fmt.Errorf("creating boundary row kernel: %w", err)
	}
	if solver.boundaryColK, err = solver.program.CreateKernel("apply_boundary_cols"); err != nil {
		solver.Close()
		return nil, fmt.Errorf("creating boundary column kernel: %w", err)
	}
	size := width * height
	byteSize := size * int(unsafe.Sizeof(float32(0)))
	if solver.currBuf, err = context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		solver.Close()
		return nil, fmt.Errorf("allocating current buffer: %w", err)
	}
	if solver.prevBuf, err = context.CreateEmptyBuffer(cl.MemReadOnly, byteSize); err != nil {
		solver.Close()
		return nil, fmt.Errorf("allocating previous buffer: %w", err)
	}
	if solver.nextBuf, err = context.CreateEmptyBuffer(cl.MemWriteOnly, byteSize); err != nil {
		solver.Close()
		return nil, fmt.Errorf("allocating next buffer: %w", err)
	}
	if solver.landIndexBuf, err = context.CreateEmptyBuffer(cl.MemReadOnly, size*int(unsafe.Sizeof(int32(0)))); err != nil {
		solver.Close()
		return nil, fmt.Errorf("allocating land index buffer: %w", err)
	}

	if err := solver.kernel.SetArgs(
		int32(width),
		int32(height),
		waveDamp32,
		waveSpeed32,
		solver.currBuf,
		solver.prevBuf,
		solver.nextBuf,
	); err != nil {
		solver.Close()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	if err := solver.clearLandKernel.SetArgs(solver.nextBuf, solver.landIndexBuf, int32(0)); err != nil {
		solver.Close()
		return nil, fmt.Errorf("setting land kernel arguments: %w", err)
	}
	reflect32 := float32(boundaryReflect)
	if err := solver.boundaryRowK.SetArgs(int32(width), int32(height), reflect32, solver.nextBuf); err != nil {
		solver.Close()
		return nil, fmt.Errorf("setting boundary row kernel arguments: %w", err)
	}
	if err := solver.boundaryColK.SetArgs(int32(width), int32(height), reflect32, solver.nextBuf); err != nil {
		solver.Close()
		return nil, fmt.Errorf("setting boundary column kernel arguments: %w", err)
	}
	return solver, nil
}

// ensureLandIndices flattens the land raster into the index list the clear
// kernel consumes.
func (s *openCLWaveSolver) ensureLandIndices(land []bool) []int32 {
	size := s.width * s.height
	if len(land) != size {
		s.landIndices = s.landIndices[:0]
		return s.landIndices
	}
	if cap(s.landIndices) < size {
		s.landIndices = make([]int32, 0, size)
	} else {
		s.landIndices = s.landIndices[:0]
	}
	for i, l := range land {
		if l {
			s.landIndices = append(s.landIndices, int32(i))
		}
	}
	return s.landIndices
}

// bindDynamicBuffers refreshes kernel arguments after device-side buffer swaps.
func (s *openCLWaveSolver) bindDynamicBuffers() error {
	if s.boundCurr != s.currBuf {
		if err := s.kernel.SetArgBuffer(4, s.currBuf); err != nil {
			return err
		}
		s.boundCurr = s.currBuf
	}
	if s.boundPrev != s.prevBuf {
		if err := s.kernel.SetArgBuffer(5, s.prevBuf); err != nil {
			return err
		}
		s.boundPrev = s.prevBuf
	}
	if s.boundNext != s.nextBuf {
		if err := s.kernel.SetArgBuffer(6, s.nextBuf); err != nil {
			return err
		}
		if err := s.clearLandKernel.SetArgBuffer(0, s.nextBuf); err != nil {
			return err
		}
		if err := s.boundaryRowK.SetArgBuffer(3, s.nextBuf); err != nil {
			return err
		}
		if err := s.boundaryColK.SetArgBuffer(3, s.nextBuf); err != nil {
			return err
		}
		s.boundNext = s.nextBuf
	}
	return nil
}

// Step advances the field by the requested number of fixed solver steps.
func (s *openCLWaveSolver) Step(field *waveField, land []bool, steps int) error {
	if steps <= 0 {
		return nil
	}
	size := s.width * s.height
	if len(field.curr) != size || len(field.prev) != size || len(field.next) != size {
		return fmt.Errorf("unexpected field buffer size")
	}
	if field.currWasModified() {
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.currBuf, false, 0, field.curr, nil); err != nil {
			return fmt.Errorf("writing current buffer: %w", err)
		}
		field.clearCurrDirty()
	}
	// The previous buffer only needs the initial upload; afterwards the device
	// keeps it updated through swaps.
	if s.coldStart {
		if _, err := s.queue.EnqueueWriteBufferFloat32(s.prevBuf, false, 0, field.prev, nil); err != nil {
			return fmt.Errorf("writing previous buffer: %w", err)
		}
	}
	if !s.landSynced {
		indices := s.ensureLandIndices(land)
		s.landCount = len(indices)
		if s.landCount > 0 {
			ptr := unsafe.Pointer(&indices[0])
			byteLen := len(indices) * int(unsafe.Sizeof(int32(0)))
			if _, err := s.queue.EnqueueWriteBuffer(s.landIndexBuf, false, 0, byteLen, ptr, nil); err != nil {
				return fmt.Errorf("writing land index buffer: %w", err)
			}
		}
		if err := s.clearLandKernel.SetArgInt32(2, int32(s.landCount)); err != nil {
			return fmt.Errorf("setting land count: %w", err)
		}
		s.landSynced = true
	}
	global := []int{size}
	didSwap := false
	for step := 0; step < steps; step++ {
		if err := s.bindDynamicBuffers(); err != nil {
			return fmt.Errorf("binding buffers: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing wave kernel: %w", err)
		}
		if s.landCount > 0 {
			if _, err := s.queue.EnqueueNDRangeKernel(s.clearLandKernel, nil, []int{s.landCount}, nil, nil); err != nil {
				return fmt.Errorf("clearing land cells: %w", err)
			}
		}
		if s.height > 1 {
			if _, err := s.queue.EnqueueNDRangeKernel(s.boundaryRowK, nil, []int{s.width}, nil, nil); err != nil {
				return fmt.Errorf("applying boundary rows: %w", err)
			}
		}
		if s.height > 2 {
			if _, err := s.queue.EnqueueNDRangeKernel(s.boundaryColK, nil, []int{s.height - 2}, nil, nil); err != nil {
				return fmt.Errorf("applying boundary columns: %w", err)
			}
		}
		s.prevBuf, s.currBuf, s.nextBuf = s.currBuf, s.nextBuf, s.prevBuf
		didSwap = true
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.currBuf, true, 0, field.curr, nil); err != nil {
		return fmt.Errorf("reading current buffer: %w", err)
	}
	if didSwap {
		if _, err := s.queue.EnqueueReadBufferFloat32(s.prevBuf, true, 0, field.prev, nil); err != nil {
			return fmt.Errorf("reading previous buffer: %w", err)
		}
	}
	s.coldStart = false
	return nil
}

// Close releases every device resource the solver holds.
func (s *openCLWaveSolver) Close() {
	for _, buf := range []**cl.MemObject{&s.landIndexBuf, &s.nextBuf, &s.prevBuf, &s.currBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
	for _, k := range []**cl.Kernel{&s.kernel, &s.clearLandKernel, &s.boundaryRowK, &s.boundaryColK} {
		if *k != nil {
			(*k).Release()
			*k = nil
		}
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

// DeviceName identifies the device running the solver.
func (s *openCLWaveSolver) DeviceName() string { return s.deviceName }
