package measure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/perflab/optbench/pkg/metric"
)

// ErrProtocolViolation marks artifact output that does not follow the
// measurement contract. A violation is a measurement error, never a
// silently defaulted sample.
var ErrProtocolViolation = errors.New("protocol violation")

// ParseOutput parses the strict three-line contract an artifact must
// print: STARTUP_TIME_US, COMPUTE_TIME_US and RESULT, in that order
// and nothing else. The caller fills in job identity and iteration.
func ParseOutput(output string) (metric.Measurement, error) {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		return metric.Measurement{}, fmt.Errorf("%w: expected exactly 3 output lines, got %d",
			ErrProtocolViolation, len(lines))
	}

	startupUs, err := parseTimeLine(lines[0], "STARTUP_TIME_US")
	if err != nil {
		return metric.Measurement{}, err
	}

	computeUs, err := parseTimeLine(lines[1], "COMPUTE_TIME_US")
	if err != nil {
		return metric.Measurement{}, err
	}

	result, err := parseResultLine(lines[2])
	if err != nil {
		return metric.Measurement{}, err
	}

	return metric.Measurement{
		StartupTimeUs: startupUs,
		ComputeTimeUs: computeUs,
		TotalTimeUs:   startupUs + computeUs,
		Result:        result,
	}, nil
}

func parseTimeLine(line, key string) (int64, error) {
	prefix := key + ":"
	if !strings.HasPrefix(line, prefix) {
		return 0, fmt.Errorf("%w: line %q must start with %q", ErrProtocolViolation, line, prefix)
	}

	value := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	us, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s value %q is not an integer", ErrProtocolViolation, key, value)
	}
	if us < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrProtocolViolation, key, us)
	}

	return us, nil
}

func parseResultLine(line string) (string, error) {
	if !strings.HasPrefix(line, "RESULT:") {
		return "", fmt.Errorf("%w: line %q must start with %q", ErrProtocolViolation, line, "RESULT:")
	}

	result := strings.TrimSpace(strings.TrimPrefix(line, "RESULT:"))
	if result == "" {
		return "", fmt.Errorf("%w: RESULT value is empty", ErrProtocolViolation)
	}

	return result, nil
}
