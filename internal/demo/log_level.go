package demo

import "github.com/golang/glog"

const (
	// progress of parameter generation
	LV_SEARCH = 1
	// store access
	LV_STORE = 2
	// per-step cipher values (public values only)
	LV_CIPHER = 3
)

func v(level glog.Level) glog.Verbose {
	return glog.V(level)
}
