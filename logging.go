package fastpair

import "github.com/sirupsen/logrus"

// log is the package-wide structured logger. Callers embedding this package
// in a larger application can redirect it with SetLogger.
var log = logrus.StandardLogger()

// SetLogger replaces the package-wide logger, e.g. to route Fast Pair logs
// into a host application's own logrus instance.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	log = l
}

func deviceFields(d *FastPairDevice) logrus.Fields {
	if d == nil {
		return logrus.Fields{}
	}
	return logrus.Fields{
		"model_id":    d.ModelID(),
		"ble_address": d.BleAddress(),
	}
}
