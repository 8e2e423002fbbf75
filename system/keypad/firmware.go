package keypad

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// DefaultFirmwareConstraint accepts every release that speaks the state/LED report protocol
const DefaultFirmwareConstraint = ">= 1.0"

// FirmwareVersion converts the BCD device release (bcdDevice) into a semantic version
func FirmwareVersion(release uint16) (*semver.Version, error) {
	major := bcd(byte(release >> 8))
	minor := bcd(byte(release))
	return semver.NewVersion(fmt.Sprintf("%d.%d.0", major, minor))
}

// CheckFirmware returns an error when release does not satisfy constraint
func CheckFirmware(release uint16, constraint string) error {
	if constraint == "" {
		constraint = DefaultFirmwareConstraint
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "[keypad] invalid firmware constraint %q", constraint)
	}
	v, err := FirmwareVersion(release)
	if err != nil {
		return errors.Wrap(err, "[keypad] invalid firmware release")
	}
	if !c.Check(v) {
		return errors.Errorf("[keypad] firmware %s does not satisfy %s", v, constraint)
	}
	return nil
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0f)
}
