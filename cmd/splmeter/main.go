// Command splmeter measures the sound pressure level of a live audio
// input and prints a smoothed A-weighted decibel reading once per second.
//
// Examples:
//
//	splmeter devices
//	splmeter run
//	splmeter run --device <id> --offset 94
//	splmeter run --raw
package main

func main() {
	execute()
}
