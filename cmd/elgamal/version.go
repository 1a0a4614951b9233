package main

import "fmt"

const (
	app_name        = "elgamal"
	ver_major uint8 = 1
	ver_minor uint8 = 0
)

var build_flag string // -ldflags "-X main.build_flag=-beta"

func versionString() string {
	return fmt.Sprintf("v%d.%d%s", ver_major, ver_minor, build_flag)
}
