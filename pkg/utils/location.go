package utils

import (
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

// AppLocation returns the zone named by APP_TIMEZONE. Calendar days, months and
// report dates are all computed in it.
func AppLocation() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"timezone": name,
			"error":    err.Error(),
		}).Warn("Unknown APP_TIMEZONE, using local time")
		return time.Local
	}

	return loc
}
