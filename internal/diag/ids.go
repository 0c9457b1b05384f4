// internal/diag/ids.go
package diag

// Built-in system sources.
// These values are part of the protocol and MUST NOT be configurable.

// ---- SYSTEM / POWER ----

const (
	IDBatteryCharge ID = 3
	IDBatteryState  ID = 7
	IDPowerSource   ID = 24
)

const (
	NameBatteryCharge = "sys:batt:charge"
	NameBatteryState  = "sys:batt:state"
	NamePowerSource   = "sys:pwr:src"
)

// ---- CLOUD CONNECTION ----

const (
	IDCloudConnectionStatus    ID = 10
	IDCloudConnectionError     ID = 13
	IDCloudDisconnects         ID = 14
	IDCloudConnectionAttempts  ID = 15
	IDCloudDisconnectionReason ID = 16
)

const (
	NameCloudConnectionStatus    = "cloud:stat"
	NameCloudConnectionError     = "cloud:err"
	NameCloudDisconnects         = "cloud:dconn"
	NameCloudConnectionAttempts  = "cloud:connatt"
	NameCloudDisconnectionReason = "cloud:disconnrsn"
)
