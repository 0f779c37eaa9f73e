package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// Access is the access mode of a register. Only the semantic checker looks at it.
type Access int

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "R"
	case AccessWrite:
		return "W"
	case AccessReadWrite:
		return "RW"
	}
	return fmt.Sprintf("Access(%d)", int(a))
}

// Writable reports whether instructions may store into the register.
func (a Access) Writable() bool { return a == AccessWrite || a == AccessReadWrite }

// RegKind enumerates register variants. RegGl is parameterized by Register.N.
type RegKind uint8

// RegisterDesc is one row of the register table.
type RegisterDesc struct {
	Name        string
	Index       byte
	Width       int
	Access      Access
	Description string
}

// GlCount is the number of GL_n registers addressable by index.
const GlCount = 64

const (
	RegV0 RegKind = iota
	RegV1
	RegV2
	RegV3
	RegR0
	RegR1
	RegR2
	RegR3
	RegR4
	RegR5
	RegR6
	RegR7
	RegR8
	RegR9
	RegR10
	RegR11
	RegR12
	RegR13
	RegR14
	RegR15
	RegDPTR
	RegStarDPTR
	RegKeyIO
	RegZero
	RegA
	RegB
	RegStarR0
	RegStarR1
	RegStarR2
	RegStarR3
	RegStarR4
	RegStarR5
	RegStarR6
	RegStarR7
	RegStarR0_16b
	RegStarR1_16b
	RegStarR2_16b
	RegStarR3_16b
	RegStarR4_16b
	RegStarR5_16b
	RegStarR6_16b
	RegStarR7_16b
	RegStarR0_32b
	RegStarR1_32b
	RegStarR2_32b
	RegStarR3_32b
	RegStarR4_32b
	RegStarR5_32b
	RegStarR6_32b
	RegStarR7_32b
	RegSysTimeMs
	RegSysTimeS
	RegSysKbled
	RegSysKeyCount
	RegSysKeyLay
	RegScriptAddr
	RegRandom
	RegSysBleNum
	RegSysVolume
	RegSelectedLed
	RegSelectedLedCol
	RegAllLedCol
	RegCfgAddr
	RegHeKeyLv
	RegSysUsbSusp
	RegGlSize
	RegGl

	regKindCount
)

var registerTable = [regKindCount]RegisterDesc{
	RegV0:             {"V0", 0x00, 8, AccessReadWrite, "Key parameters/General purpose register"},
	RegV1:             {"V1", 0x01, 8, AccessReadWrite, "Key parameters/General purpose register"},
	RegV2:             {"V2", 0x02, 8, AccessReadWrite, "Key parameters/General purpose register"},
	RegV3:             {"V3", 0x03, 8, AccessReadWrite, "Key parameters/General purpose register"},
	RegR0:             {"R0", 0x04, 32, AccessReadWrite, "General purpose register"},
	RegR1:             {"R1", 0x05, 32, AccessReadWrite, "General purpose register"},
	RegR2:             {"R2", 0x06, 32, AccessReadWrite, "General purpose register"},
	RegR3:             {"R3", 0x07, 32, AccessReadWrite, "General purpose register"},
	RegR4:             {"R4", 0x20, 32, AccessReadWrite, "General purpose register"},
	RegR5:             {"R5", 0x21, 32, AccessReadWrite, "General purpose register"},
	RegR6:             {"R6", 0x22, 32, AccessReadWrite, "General purpose register"},
	RegR7:             {"R7", 0x23, 32, AccessReadWrite, "General purpose register"},
	RegR8:             {"R8", 0x24, 32, AccessReadWrite, "General purpose register"},
	RegR9:             {"R9", 0x25, 32, AccessReadWrite, "General purpose register"},
	RegR10:            {"R10", 0x26, 32, AccessReadWrite, "General purpose register"},
	RegR11:            {"R11", 0x27, 32, AccessReadWrite, "General purpose register"},
	RegR12:            {"R12", 0x28, 32, AccessReadWrite, "General purpose register"},
	RegR13:            {"R13", 0x29, 32, AccessReadWrite, "General purpose register"},
	RegR14:            {"R14", 0x2A, 32, AccessReadWrite, "General purpose register"},
	RegR15:            {"R15", 0x2B, 32, AccessReadWrite, "General purpose register"},
	RegDPTR:           {"DPTR", 0x09, 32, AccessReadWrite, "Mapped to R4"},
	RegStarDPTR:       {"*DPTR", 0x08, 8, AccessRead, "ROM addressing dedicated register, mapped to R4, shared address space"},
	RegKeyIO:          {"KEY_IO", 0x0A, 8, AccessRead, "0=pressed"},
	RegZero:           {"ZERO", 0x0F, 8, AccessRead, "Always reads as 0"},
	RegA:              {"A", 0x10, 32, AccessReadWrite, "Dedicated register. Mapped to R6, shared address space. Can reduce code length for certain instructions"},
	RegB:              {"B", 0x11, 32, AccessReadWrite, "Dedicated register. Mapped to R7, shared address space. Can reduce code length for certain instructions"},
	RegStarR0:         {"*R0", 0x0B, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR1:         {"*R1", 0x0C, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR2:         {"*R2", 0x0D, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR3:         {"*R3", 0x0E, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR4:         {"*R4", 0x2C, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR5:         {"*R5", 0x2D, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR6:         {"*R6", 0x2E, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR7:         {"*R7", 0x2F, 8, AccessReadWrite, "RAM addressing using register (8-bit)"},
	RegStarR0_16b:     {"*R0_16b", 0x30, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR1_16b:     {"*R1_16b", 0x31, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR2_16b:     {"*R2_16b", 0x32, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR3_16b:     {"*R3_16b", 0x33, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR4_16b:     {"*R4_16b", 0x34, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR5_16b:     {"*R5_16b", 0x35, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR6_16b:     {"*R6_16b", 0x36, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR7_16b:     {"*R7_16b", 0x37, 16, AccessReadWrite, "RAM addressing using register (16-bit)"},
	RegStarR0_32b:     {"*R0_32b", 0x38, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR1_32b:     {"*R1_32b", 0x39, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR2_32b:     {"*R2_32b", 0x3A, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR3_32b:     {"*R3_32b", 0x3B, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR4_32b:     {"*R4_32b", 0x3C, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR5_32b:     {"*R5_32b", 0x3D, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR6_32b:     {"*R6_32b", 0x3E, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegStarR7_32b:     {"*R7_32b", 0x3F, 32, AccessReadWrite, "RAM addressing using register (32-bit)"},
	RegSysTimeMs:      {"SYS_TIME_MS", 0x12, 16, AccessRead, "System time in milliseconds. Range 0-999"},
	RegSysTimeS:       {"SYS_TIME_S", 0x13, 32, AccessRead, "System time in seconds"},
	RegSysKbled:       {"SYS_KBLED", 0x14, 8, AccessReadWrite, "Keyboard LED status (Num Lock, Caps Lock, Scroll Lock, etc.)"},
	RegSysKeyCount:    {"SYS_KEY_COUNT", 0x15, 32, AccessRead, "Physical key press count"},
	RegSysKeyLay:      {"SYS_KEY_LAY", 0x16, 8, AccessReadWrite, "Keyboard layer. A keyboard may have multiple key layers"},
	RegScriptAddr:     {"SCRIPT_ADDR", 0x17, 32, AccessRead, "Script starting address"},
	RegRandom:         {"RANDOM", 0x18, 32, AccessReadWrite, "R: Get random number W: Set random seed"},
	RegSysBleNum:      {"SYS_BLE_NUM", 0x19, 8, AccessReadWrite, "Bluetooth multi-device switching"},
	RegSysVolume:      {"SYS_VOLUME", 0x1A, 8, AccessReadWrite, "Absolute system volume; currently ineffective on Windows"},
	RegSelectedLed:    {"SELECTED_LED", 0x1B, 8, AccessReadWrite, "Selected LED for operation. Default is the LED of the pressed key"},
	RegSelectedLedCol: {"SELECTED_LED_COL", 0x1C, 24, AccessReadWrite, "Modify the color of selected LED (RGB888)"},
	RegAllLedCol:      {"ALL_LED_COL", 0x1D, 24, AccessReadWrite, "Modify the color of all LEDs (RGB888)"},
	RegCfgAddr:        {"CFG_ADDR", 0x1E, 32, AccessRead, "Get current configuration file address"},
	RegHeKeyLv:        {"HE_KEY_LV", 0x1F, 32, AccessReadWrite, "Magnetic axis key depth value in micrometers"},
	RegSysUsbSusp:     {"SYS_USB_SUSP", 0x40, 8, AccessReadWrite, "R: 1=USB in sleep state W: Wake up host"},
	RegGlSize:         {"GL_SIZE", 0x7F, 8, AccessRead, "Number of GL registers (minimum 4, maximum 64)"},
	RegGl:             {"GL_", 0x80, 32, AccessReadWrite, "General-purpose global register"},
}

// Register is a concrete register operand. N is only meaningful for RegGl.
type Register struct {
	Kind RegKind
	N    uint8
}

// Reg returns the non-parameterized register of kind k.
func Reg(k RegKind) Register { return Register{Kind: k} }

// GL returns the global register GL_n. It panics when n is out of range.
func GL(n int) Register {
	if n < 0 || n >= GlCount {
		panic(fmt.Sprintf("isa: GL_%d out of range", n))
	}
	return Register{Kind: RegGl, N: uint8(n)}
}

// Desc returns the table row for r, specialised for GL_n.
func (r Register) Desc() RegisterDesc {
	if r.Kind >= regKindCount {
		return RegisterDesc{Name: fmt.Sprintf("RegKind(%d)", r.Kind)}
	}
	d := registerTable[r.Kind]
	if r.Kind == RegGl {
		d.Name = "GL_" + strconv.Itoa(int(r.N))
		d.Index = 0x80 + r.N
	}
	return d
}

// Index is the byte emitted for r in a register operand slot.
func (r Register) Index() byte { return r.Desc().Index }

// Width is the register width in bits.
func (r Register) Width() int { return r.Desc().Width }

// Access is the register access mode.
func (r Register) Access() Access { return r.Desc().Access }

func (r Register) String() string { return r.Desc().Name }

var registersByName map[string]Register

func init() {
	registersByName = make(map[string]Register, len(registerTable)+8)
	for k := RegKind(0); k < regKindCount; k++ {
		if k == RegGl {
			continue
		}
		registersByName[strings.ToUpper(registerTable[k].Name)] = Reg(k)
	}
	// *Rn_8b spells the plain 8-bit indirect form.
	for n := 0; n < 8; n++ {
		registersByName[fmt.Sprintf("*R%d_8B", n)] = Reg(RegStarR0 + RegKind(n))
	}
}

// ParseRegister resolves a register name, ignoring case. GL_n accepts n in 0..63.
func ParseRegister(name string) (Register, bool) {
	upper := strings.ToUpper(name)
	if reg, ok := registersByName[upper]; ok {
		return reg, true
	}
	if rest, ok := strings.CutPrefix(upper, "GL_"); ok && rest != "" {
		n, err := strconv.ParseUint(rest, 10, 8)
		if err == nil && n < GlCount {
			return GL(int(n)), true
		}
	}
	return Register{}, false
}

// Registers lists every register except the GL_n family, in table order.
func Registers() []Register {
	out := make([]Register, 0, regKindCount)
	for k := RegKind(0); k < regKindCount; k++ {
		if k == RegGl {
			continue
		}
		out = append(out, Reg(k))
	}
	return out
}
