package model

const (
	nearzero   = 1e-8
	tinyfrac   = 1e-6
	steadyiter = 500

	defaultNtt = 4
)
