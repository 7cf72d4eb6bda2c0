package model

// SplashState tracks whether the splash screen is still showing
type SplashState string

const (
	SplashVisible  SplashState = "visible"
	SplashFinished SplashState = "finished"
)
