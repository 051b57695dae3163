package dbr

// TimeStamp is the EPICS wire timestamp: seconds since 1990-01-01 00:00:00
// UTC (the "EPICS epoch", itself 631152000 seconds after the Unix epoch) and
// nanoseconds within that second.
type TimeStamp struct {
	SecondsSinceEpoch int32
	NanoSeconds       uint32
}

// EpicsEpochOffset is the number of seconds between the Unix epoch and the
// EPICS epoch (1990-01-01T00:00:00Z).
const EpicsEpochOffset = 631152000

// --- family: raw value (0-6) ---

type String struct {
	Value [MaxStringSize]byte
}

type Int struct {
	Value int16
}

type Float struct {
	Value float32
}

type Enum struct {
	Value uint16
}

type Char struct {
	Value uint8
}

type Long struct {
	Value int32
}

type Double struct {
	Value float64
}

// --- family: status (7-13) ---

type StsString struct {
	Status   int16
	Severity int16
	Value    [MaxStringSize]byte
}

type StsInt struct {
	Status   int16
	Severity int16
	Value    int16
}

type StsFloat struct {
	Status   int16
	Severity int16
	Value    float32
}

type StsEnum struct {
	Status   int16
	Severity int16
	Value    uint16
}

type StsChar struct {
	Status   int16
	Severity int16
	RiscPad  uint8
	Value    uint8
}

type StsLong struct {
	Status   int16
	Severity int16
	Value    int32
}

type StsDouble struct {
	Status   int16
	Severity int16
	RiscPad  int32
	Value    float64
}

// --- family: time (14-20) ---

type TimeString struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	Value    [MaxStringSize]byte
}

type TimeInt struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	RiscPad  int16
	Value    uint16
}

type TimeFloat struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	Value    float32
}

type TimeEnum struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	RiscPad  int16
	Value    uint16
}

type TimeChar struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	RiscPad0 int16
	RiscPad1 uint8
	Value    uint8
}

type TimeLong struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	Value    int32
}

type TimeDouble struct {
	Status   int16
	Severity int16
	Stamp    TimeStamp
	RiscPad  int32
	Value    float64
}

// --- family: graphic (22-27; 21 unimplemented) ---

type GrInt struct {
	Status             int16
	Severity           int16
	Units              [MaxUnitsSize]byte
	UpperDispLimit     int16
	LowerDispLimit     int16
	UpperAlarmLimit    int16
	UpperWarningLimit  int16
	LowerWarningLimit  int16
	LowerAlarmLimit    int16
	Value              int16
}

type GrFloat struct {
	Status            int16
	Severity          int16
	Precision         int16
	RiscPad0          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    float32
	LowerDispLimit    float32
	UpperAlarmLimit   float32
	UpperWarningLimit float32
	LowerWarningLimit float32
	LowerAlarmLimit   float32
	Value             float32
}

type GrEnum struct {
	Status   int16
	Severity int16
	NoStr    int16
	Strs     [MaxEnumStates * MaxEnumStateSize]byte
	Value    uint16
}

type GrChar struct {
	Status            int16
	Severity          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    uint8
	LowerDispLimit    uint8
	UpperAlarmLimit   uint8
	UpperWarningLimit uint8
	LowerWarningLimit uint8
	LowerAlarmLimit   uint8
	Value             uint8
}

type GrLong struct {
	Status            int16
	Severity          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    int32
	LowerDispLimit    int32
	UpperAlarmLimit   int32
	UpperWarningLimit int32
	LowerWarningLimit int32
	LowerAlarmLimit   int32
	Value             int32
}

type GrDouble struct {
	Status            int16
	Severity          int16
	Precision         int16
	RiscPad0          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    float64
	LowerDispLimit    float64
	UpperAlarmLimit   float64
	UpperWarningLimit float64
	LowerWarningLimit float64
	LowerAlarmLimit   float64
	Value             float64
}

// --- family: control (29-34; 28 unimplemented) ---

type CtrlInt struct {
	Status            int16
	Severity          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    int16
	LowerDispLimit    int16
	UpperAlarmLimit   int16
	UpperWarningLimit int16
	LowerWarningLimit int16
	LowerAlarmLimit   int16
	UpperCtrlLimit    int16
	LowerCtrlLimit    int16
	Value             int16
}

type CtrlFloat struct {
	Status            int16
	Severity          int16
	Precision         int16
	RiscPad0          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    float32
	LowerDispLimit    float32
	UpperAlarmLimit   float32
	UpperWarningLimit float32
	LowerWarningLimit float32
	LowerAlarmLimit   float32
	UpperCtrlLimit    float32
	LowerCtrlLimit    float32
	Value             float32
}

type CtrlEnum struct {
	Status   int16
	Severity int16
	NoStr    int16
	Strs     [MaxEnumStates * MaxEnumStateSize]byte
	Value    uint16
}

type CtrlChar struct {
	Status            int16
	Severity          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    uint8
	LowerDispLimit    uint8
	UpperAlarmLimit   uint8
	UpperWarningLimit uint8
	LowerWarningLimit uint8
	LowerAlarmLimit   uint8
	UpperCtrlLimit    uint8
	LowerCtrlLimit    uint8
	RiscPad           uint8
	Value             uint8
}

type CtrlLong struct {
	Status            int16
	Severity          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    int32
	LowerDispLimit    int32
	UpperAlarmLimit   int32
	UpperWarningLimit int32
	LowerWarningLimit int32
	LowerAlarmLimit   int32
	UpperCtrlLimit    int32
	LowerCtrlLimit    int32
	Value             int32
}

type CtrlDouble struct {
	Status            int16
	Severity          int16
	Precision         int16
	RiscPad0          int16
	Units             [MaxUnitsSize]byte
	UpperDispLimit    float64
	LowerDispLimit    float64
	UpperAlarmLimit   float64
	UpperWarningLimit float64
	LowerWarningLimit float64
	LowerAlarmLimit   float64
	UpperCtrlLimit    float64
	LowerCtrlLimit    float64
	Value             float64
}

// --- administrative types (35-38) ---

type PutAckt struct {
	Value uint16
}

type PutAcks struct {
	Value uint16
}

type StsAckString struct {
	Status   int16
	Severity int16
	Ackt     uint16
	Acks     uint16
	Value    [MaxStringSize]byte
}

type ClassName struct {
	Value uint16
}
