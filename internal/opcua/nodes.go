package opcua

import (
	"strings"

	"github.com/sebastiankruger/motorplant-simulator/internal/factory"
	"github.com/sebastiankruger/motorplant-simulator/internal/motor"
)

// NodeDefinition describes one OPC UA variable node exposed for a motor.
type NodeDefinition struct {
	Name         string      // Node name, e.g. "DC.Speed"
	DisplayName  string      // Human-readable name
	Description  string      // Description of the node
	Unit         string      // Engineering unit (RPM, A, °C, ...)
	InitialValue interface{} // Initial/default value; also fixes the data type
}

// MotorNodes returns the telemetry node set for one motor variant,
// prefixed with the variant name ("DC" or "AC").
func MotorNodes(kind motor.Kind) []NodeDefinition {
	prefix := string(kind)
	return []NodeDefinition{
		{Name: prefix + ".Voltage", DisplayName: prefix + " Voltage", Description: "Applied voltage", Unit: "V", InitialValue: 0.0},
		{Name: prefix + ".Current", DisplayName: prefix + " Current", Description: "Drive current", Unit: "A", InitialValue: 0.0},
		{Name: prefix + ".Speed", DisplayName: prefix + " Speed", Description: "Shaft speed", Unit: "RPM", InitialValue: 0.0},
		{Name: prefix + ".Reference", DisplayName: prefix + " Reference", Description: "Target speed", Unit: "RPM", InitialValue: 0.0},
		{Name: prefix + ".Torque", DisplayName: prefix + " Torque", Description: "Shaft torque", Unit: "Nm", InitialValue: 0.0},
		{Name: prefix + ".Efficiency", DisplayName: prefix + " Efficiency", Description: "Motor efficiency", Unit: "%", InitialValue: motor.InitialEfficiency},
		{Name: prefix + ".Temperature", DisplayName: prefix + " Temperature", Description: "Winding temperature", Unit: "degC", InitialValue: motor.InitialTemperature},
		{Name: prefix + ".OperatingHours", DisplayName: prefix + " Operating Hours", Description: "Cumulative operating cycles", Unit: "cycles", InitialValue: int32(0)},
		{Name: prefix + ".Cycle", DisplayName: prefix + " Cycle", Description: "Last simulated cycle", Unit: "", InitialValue: int32(0)},
	}
}

// MachineNodes returns the combined DC and AC node set for one machine.
func MachineNodes() []NodeDefinition {
	return append(MotorNodes(motor.KindDC), MotorNodes(motor.KindAC)...)
}

// SnapshotValues converts a motor snapshot into the value map for its
// machine namespace. The key prefix is derived from the motor identity
// suffix ("..._DC" or "..._AC").
func SnapshotValues(snap motor.Snapshot) map[string]interface{} {
	prefix := string(motor.KindDC)
	if strings.HasSuffix(snap.MotorID, "_"+string(motor.KindAC)) {
		prefix = string(motor.KindAC)
	}
	return map[string]interface{}{
		prefix + ".Voltage":        snap.Voltage,
		prefix + ".Current":        snap.Current,
		prefix + ".Speed":          snap.Speed,
		prefix + ".Reference":      snap.Reference,
		prefix + ".Torque":         snap.Torque,
		prefix + ".Efficiency":     snap.Efficiency,
		prefix + ".Temperature":    snap.Temperature,
		prefix + ".OperatingHours": int32(snap.OperatingHours),
		prefix + ".Cycle":          int32(snap.Cycle),
	}
}

// RegisterFactory registers one namespace per machine, starting at
// namespace index 2, and returns the machine-ID to namespace mapping.
func RegisterFactory(s *Server, f *factory.Factory) (map[string]uint16, error) {
	namespaces := make(map[string]uint16)
	ns := uint16(2)
	for _, line := range f.Lines() {
		for _, m := range line.Machines() {
			if err := s.RegisterNamespace(ns, m.ID(), "Machine with one DC and one AC motor", MachineNodes()); err != nil {
				return nil, err
			}
			namespaces[m.ID()] = ns
			ns++
		}
	}
	return namespaces, nil
}

// MachineIDOf strips the motor-type suffix from a motor identity.
func MachineIDOf(motorID string) string {
	motorID = strings.TrimSuffix(motorID, "_"+string(motor.KindDC))
	return strings.TrimSuffix(motorID, "_"+string(motor.KindAC))
}
