package device

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var ErrSensorNotReady = errors.New("sensor reading failed crc check")

// W1Thermometer reads a DS18B20 probe through the Linux 1-Wire sysfs interface,
// for example /sys/bus/w1/devices/28-000005e2fdc3/w1_slave.
type W1Thermometer struct {
	path string
}

func NewW1Thermometer(path string) *W1Thermometer {
	return &W1Thermometer{path: path}
}

// Read returns the temperature in degrees Celsius.
func (w *W1Thermometer) Read(_ context.Context) (float64, error) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read thermometer: %w", err)
	}

	return parseW1Slave(raw)
}

func parseW1Slave(raw []byte) (float64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))

	if !scanner.Scan() || !strings.HasSuffix(strings.TrimSpace(scanner.Text()), "YES") {
		return 0, ErrSensorNotReady
	}

	if !scanner.Scan() {
		return 0, errors.New("thermometer output has no temperature line")
	}

	line := scanner.Text()
	idx := strings.LastIndex(line, "t=")
	if idx < 0 {
		return 0, fmt.Errorf("no temperature in %q", line)
	}

	milli, err := strconv.ParseInt(strings.TrimSpace(line[idx+2:]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid temperature value: %w", err)
	}

	return float64(milli) / 1000, nil
}

// ADCLevel reads a resistive water level sensor through an IIO ADC channel, for
// example /sys/bus/iio/devices/iio:device0/in_voltage0_raw, and scales the raw value
// to a percentage of maxRaw.
type ADCLevel struct {
	path   string
	maxRaw float64
}

func NewADCLevel(path string, maxRaw float64) *ADCLevel {
	return &ADCLevel{path: path, maxRaw: maxRaw}
}

// Read returns the water level in percent, clamped to [0, 100].
func (a *ADCLevel) Read(_ context.Context) (float64, error) {
	if a.maxRaw <= 0 {
		return 0, errors.New("level sensor max raw value must be positive")
	}

	raw, err := os.ReadFile(a.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read level sensor: %w", err)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid level sensor value: %w", err)
	}

	return min(max(value/a.maxRaw*100, 0), 100), nil
}
