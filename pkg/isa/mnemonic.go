package isa

import (
	"fmt"
	"sort"
	"strings"
)

// Mnemonic identifies one VM instruction. The set is closed; every value
// below mnemonicCount has exactly one Descriptor.
type Mnemonic int

const (
	OpEND Mnemonic = iota
	OpNOP
	OpJMP
	OpSJMP
	OpAJMP
	OpSLEEP_X256
	OpSLEEP
	OpSLEEP_RAND_X256
	OpSLEEP_RAND
	OpSLEEP_X256_VAL
	OpSLEEP_VAL
	OpSLEEP_RAND_X8_VAL
	OpSLEEP_RAND_VAL
	OpSLEEP_U16
	OpSLEEP_RAND_U16
	OpPRESS_SK
	OpPRESS_GK
	OpPRESS_MK
	OpPRESS_MU
	OpPRESS_SK_VAL
	OpPRESS_GK_VAL
	OpPRESS_MK_VAL
	OpPRESS_MU_VAL
	OpRELEASE_SK
	OpRELEASE_GK
	OpRELEASE_MK
	OpRELEASE_MU
	OpRELEASE_SK_VAL
	OpRELEASE_GK_VAL
	OpRELEASE_MK_VAL
	OpRELEASE_MU_VAL
	OpUPDATE
	OpMO_XYZ
	OpMO_XYZ_VAL
	OpGA_XYZ
	OpGA_XYZ_VAL
	OpTB_XY
	OpTB_XY_VAL
	OpDIAL_DATA
	OpDIAL_DATA_VAL
	OpKEY_TO_AXIS
	OpPRESS_GAK
	OpPRESS_GAK_VAL
	OpRELEASE_GAK
	OpRELEASE_GAK_VAL
	OpC2K
	OpU2K
	OpC2K_RAND
	OpU2K_REG
	OpPRINT_REG
	OpJFA
	OpJFB
	OpJFG
	OpJFL
	OpJA
	OpJB
	OpJG
	OpJL
	OpJFC
	OpJFNC
	OpJFZ
	OpJFNZ
	OpDJFNZ
	OpCJFNE
	OpJC
	OpJNC
	OpJZ
	OpJNZ
	OpDJNZ
	OpCJNE
	OpCALL
	OpRET
	OpAND
	OpAND8
	OpAND16
	OpAND32
	OpADD_A
	OpADD8_A
	OpSUB_A
	OpSUB8_A
	OpOR_A
	OpOR8_A
	OpDEC
	OpINC
	OpMUL_A
	OpDIV_A
	OpIMUL_A
	OpXOR
	OpXOR8
	OpXOR16
	OpXOR32
	OpSHL
	OpSHL8
	OpSHR
	OpSHR8
	OpCLR
	OpNOT
	OpXCH
	OpCMP
	OpADD
	OpADD8
	OpADD16
	OpADD32
	OpSUB
	OpSUB8
	OpSUB16
	OpSUB32
	OpOR
	OpOR8
	OpOR16
	OpOR32
	OpADD_R
	OpSUB_R
	OpAND_R
	OpOR_R
	OpXOR_R
	OpMUL_R
	OpDIV_R
	OpMOD_R
	OpIMUL_R
	OpPUSH
	OpPOP
	OpMOV
	OpMOV8
	OpMOV16
	OpMOV32
	OpMOVSX8b
	OpMOVSX16b
	OpMOV8SX
	OpMOV16SX
	OpLED_CTRL
	OpLED_COL
	OpSTART
	OpSTOP
	OpSYCON
	OpMALLOC
	OpFREE
	OpNEW_THREAD
	OpWHILE_UPDATE
	OpJMP_TO_SCRIPT
	OpMOV_PC2REG
	OpVALUE_RELOAD
	OpMODE_JOG
	OpWAIT_IF_RELEASE
	OpWAIT_IF_PRESS
	OpEXIT_IF_RELEAS
	OpEXIT_IF_PRESS
	OpEXIT_IF_ANYKEY
	OpRES
	OpEXIT

	mnemonicCount
)

// Descriptor is the static encoding description of one mnemonic.
// Length always equals 1 + the summed widths of Operands.
type Descriptor struct {
	Name        string
	Opcode      byte
	Length      int
	Operands    []OperandDesc
	Description string
	Note        string
}

var descriptors = [mnemonicCount]Descriptor{
	OpEND:               {"END", 0x00, 1, nil, "End program", ""},
	OpNOP:               {"NOP", 0x01, 1, nil, "No operation", ""},
	OpJMP:               {"JMP", 0x02, 3, []OperandDesc{r(TypeLabel)}, "PC = i;", "Long jump"},
	OpSJMP:              {"SJMP", 0x03, 2, []OperandDesc{r(TypeI8)}, "PC = PC + i;", "Short jump, offset"},
	OpAJMP:              {"AJMP", 0x04, 2, []OperandDesc{r(TypeU8)}, "PC = (PC & 0xff00) + i;", "Jump within 256B range of address"},
	OpSLEEP_X256:        {"SLEEP_X256", 0x05, 2, []OperandDesc{r(TypeU8)}, "Sleep(i * 256);", "Delay range 0-65280ms (256x multiplier)"},
	OpSLEEP:             {"SLEEP", 0x06, 2, []OperandDesc{r(TypeU8)}, "Sleep(i * 1);", "Delay range 0-255ms"},
	OpSLEEP_RAND_X256:   {"SLEEP_RAND_X256", 0x07, 2, []OperandDesc{r(TypeU8)}, "Sleep(rand()%(i * 256)+1);", "Random delay range 1-65281ms (256x multiplier)"},
	OpSLEEP_RAND:        {"SLEEP_RAND", 0x08, 2, []OperandDesc{r(TypeU8)}, "Sleep(rand()%i+1);", "Random delay range 1-256ms"},
	OpSLEEP_X256_VAL:    {"SLEEP_X256_VAL", 0x09, 2, []OperandDesc{r(TypeRegister)}, "Sleep(i * 256);", "Register version of delay, range depends on register (256x multiplier)"},
	OpSLEEP_VAL:         {"SLEEP_VAL", 0x0A, 2, []OperandDesc{r(TypeRegister)}, "Sleep(i);", "Register version of delay, range depends on register"},
	OpSLEEP_RAND_X8_VAL: {"SLEEP_RAND_X8_VAL", 0x0B, 2, []OperandDesc{r(TypeRegister)}, "Sleep(rand()%(i * 8)+1);", "Register version of random delay, range depends on register (8x multiplier)"},
	OpSLEEP_RAND_VAL:    {"SLEEP_RAND_VAL", 0x0C, 2, []OperandDesc{r(TypeRegister)}, "Sleep(rand()%i+1);", "Register version of random delay, range depends on register"},
	OpSLEEP_U16:         {"SLEEP_U16", 0x0D, 3, []OperandDesc{r(TypeU16)}, "Sleep(i);", "Delay range 1-65536ms"},
	OpSLEEP_RAND_U16:    {"SLEEP_RAND_U16", 0x0E, 3, []OperandDesc{r(TypeU16)}, "Sleep(rand()%i+1);", "Delay range 1-65536ms"},
	OpPRESS_SK:          {"PRESS_SK", 0x10, 2, []OperandDesc{r(TypeU8)}, "Keyboard modifier key i pressed", "HID keycode"},
	OpPRESS_GK:          {"PRESS_GK", 0x11, 2, []OperandDesc{r(TypeU8)}, "Keyboard normal key i pressed", "HID keycode"},
	OpPRESS_MK:          {"PRESS_MK", 0x12, 2, []OperandDesc{r(TypeU8)}, "Mouse button i pressed", "HID keycode"},
	OpPRESS_MU:          {"PRESS_MU", 0x13, 2, []OperandDesc{r(TypeU8)}, "Media key i pressed", "HID keycode"},
	OpPRESS_SK_VAL:      {"PRESS_SK_VAL", 0x14, 2, []OperandDesc{r(TypeRegister)}, "Keyboard modifier key i pressed", "Register version"},
	OpPRESS_GK_VAL:      {"PRESS_GK_VAL", 0x15, 2, []OperandDesc{r(TypeRegister)}, "Keyboard normal key i pressed", "Register version"},
	OpPRESS_MK_VAL:      {"PRESS_MK_VAL", 0x16, 2, []OperandDesc{r(TypeRegister)}, "Mouse button i pressed", "Register version"},
	OpPRESS_MU_VAL:      {"PRESS_MU_VAL", 0x17, 2, []OperandDesc{r(TypeRegister)}, "Media key i pressed", "Register version"},
	OpRELEASE_SK:        {"RELEASE_SK", 0x18, 2, []OperandDesc{r(TypeU8)}, "Keyboard modifier key i released", "HID keycode"},
	OpRELEASE_GK:        {"RELEASE_GK", 0x19, 2, []OperandDesc{r(TypeU8)}, "Keyboard normal key i released", "HID keycode"},
	OpRELEASE_MK:        {"RELEASE_MK", 0x1A, 2, []OperandDesc{r(TypeU8)}, "Mouse button i released", "HID keycode"},
	OpRELEASE_MU:        {"RELEASE_MU", 0x1B, 2, []OperandDesc{r(TypeU8)}, "Media key i released", "HID keycode"},
	OpRELEASE_SK_VAL:    {"RELEASE_SK_VAL", 0x1C, 2, []OperandDesc{r(TypeRegister)}, "Keyboard modifier key i released", "Register version"},
	OpRELEASE_GK_VAL:    {"RELEASE_GK_VAL", 0x1D, 2, []OperandDesc{r(TypeRegister)}, "Keyboard normal key i released", "Register version"},
	OpRELEASE_MK_VAL:    {"RELEASE_MK_VAL", 0x1E, 2, []OperandDesc{r(TypeRegister)}, "Mouse button i released", "Register version"},
	OpRELEASE_MU_VAL:    {"RELEASE_MU_VAL", 0x1F, 2, []OperandDesc{r(TypeRegister)}, "Media key i released", "Register version"},
	OpUPDATE:            {"UPDATE", 0x20, 1, nil, "Force HID packet retransmission", "Rarely used"},
	OpMO_XYZ:            {"MO_XYZ", 0x21, 3, []OperandDesc{r(TypeU8), r(TypeI8)}, "Mouse cursor movement axis=i data=j", "0: x, 1:y, 2:scroll"},
	OpMO_XYZ_VAL:        {"MO_XYZ_VAL", 0x22, 3, []OperandDesc{r(TypeU8), r(TypeRegister)}, "Mouse cursor movement axis=i data=j", "Register version"},
	OpGA_XYZ:            {"GA_XYZ", 0x23, 4, []OperandDesc{r(TypeU8), r(TypeU16)}, "joystick axis=i data=j", ""},
	OpGA_XYZ_VAL:        {"GA_XYZ_VAL", 0x24, 3, []OperandDesc{r(TypeU8), r(TypeRegister)}, "joystick axis=i data=j", "Register version"},
	OpTB_XY:             {"TB_XY", 0x25, 5, []OperandDesc{r(TypeI16), r(TypeI16)}, "Mouse cursor positioning x=i y=j", ""},
	OpTB_XY_VAL:         {"TB_XY_VAL", 0x26, 3, []OperandDesc{r(TypeRegister), r(TypeRegister)}, "Mouse cursor positioning x=i y=j", "Register version"},
	OpDIAL_DATA:         {"DIAL_DATA", 0x27, 2, []OperandDesc{r(TypeU8)}, "Dial data=i", "data:0=release 1=press 2=cw 3=ccw"},
	OpDIAL_DATA_VAL:     {"DIAL_DATA_VAL", 0x28, 2, []OperandDesc{r(TypeRegister)}, "Dial data=i", "data:0=release 1=press 2=cw 3=ccw, register version"},
	OpKEY_TO_AXIS:       {"KEY_TO_AXIS", 0x29, 1, nil, "joystick axis=reg::val[0] type=reg::val[1]", "Internal use"},
	OpPRESS_GAK:         {"PRESS_GAK", 0x2C, 2, []OperandDesc{r(TypeU8)}, "joystick button i pressed", ""},
	OpPRESS_GAK_VAL:     {"PRESS_GAK_VAL", 0x2D, 2, []OperandDesc{r(TypeRegister)}, "joystick button i pressed", "Register version"},
	OpRELEASE_GAK:       {"RELEASE_GAK", 0x2E, 2, []OperandDesc{r(TypeU8)}, "joystick button i released", ""},
	OpRELEASE_GAK_VAL:   {"RELEASE_GAK_VAL", 0x2F, 2, []OperandDesc{r(TypeRegister)}, "joystick button i released", "Register version"},
	OpC2K:               {"C2K", 0x30, 1, nil, "print ascii character", "Internal use"},
	OpU2K:               {"U2K", 0x31, 1, nil, "print unicode character", "Internal use"},
	OpC2K_RAND:          {"C2K_RAND", 0x32, 1, nil, "print random ascii character", "Internal use"},
	OpU2K_REG:           {"U2K_REG", 0x33, 1, nil, "print value", "Internal use, requires looping until complete"},
	OpPRINT_REG:         {"PRINT_REG", 0x34, 2, []OperandDesc{r(TypeRegister)}, "print value", "Print register value, single execution outputs complete"},
	OpJFA:               {"JFA", 0x40, 4, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeRegister)}, "if (i>j)PC=k;", "Compare unsigned (unsigned), jump if true. Target in register"},
	OpJFB:               {"JFB", 0x41, 4, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeRegister)}, "if (i<j)PC=k;", "Compare unsigned (unsigned), jump if true. Target in register"},
	OpJFG:               {"JFG", 0x42, 4, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeRegister)}, "if (i>j)PC=k;", "Compare unsigned (unsigned), jump if true. Target in register"},
	OpJFL:               {"JFL", 0x43, 4, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeRegister)}, "if (i<j)PC=k;", "Compare unsigned (unsigned), jump if true. Target in register"},
	OpJA:                {"JA", 0x44, 5, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeLabel)}, "if (i>j)PC=k;", "Compare signed (>), jump if true. Target is label"},
	OpJB:                {"JB", 0x45, 5, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeLabel)}, "if (i<j)PC=k;", "Compare signed (<), jump if true. Target is label"},
	OpJG:                {"JG", 0x46, 5, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeLabel)}, "if (i>j)PC=k;", "Compare signed (>), jump if true. Target is label"},
	OpJL:                {"JL", 0x47, 5, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeLabel)}, "if (i<j)PC=k;", "Compare signed (<), jump if true. Target is label"},
	OpJFC:               {"JFC", 0x48, 2, []OperandDesc{r(TypeRegister)}, "if (CY) PC = i;", "Jump if CY set. Target address stored in register"},
	OpJFNC:              {"JFNC", 0x49, 2, []OperandDesc{r(TypeRegister)}, "if (!CY) PC = i;", "Jump if CY not set. Target address stored in register"},
	OpJFZ:               {"JFZ", 0x4A, 3, []OperandDesc{r(TypeRegister), r(TypeRegister)}, "if (!i) PC = j;", "Jump if register is 0. Target address stored in register"},
	OpJFNZ:              {"JFNZ", 0x4B, 3, []OperandDesc{r(TypeRegister), r(TypeRegister)}, "if (i) PC = j;", "Jump if register is not 0. Target address stored in register"},
	OpDJFNZ:             {"DJFNZ", 0x4C, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "if (--i) PC = j;", "Decrement and jump if not 0. Target address stored in register"},
	OpCJFNE:             {"CJFNE", 0x4D, 4, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeRegister)}, "if (i != j) {CY = i<j;PC = k}", "Compare and set CY, jump if not equal. Target in register"},
	OpJC:                {"JC", 0x4E, 3, []OperandDesc{r(TypeLabel)}, "if (CY) PC = i;", "Jump if CY set. Target address is label"},
	OpJNC:               {"JNC", 0x4F, 3, []OperandDesc{r(TypeLabel)}, "if (!CY) PC = i;", "Jump if CY not set. Target address is label"},
	OpJZ:                {"JZ", 0x50, 4, []OperandDesc{r(TypeRegister), r(TypeLabel)}, "if (!i) PC = j;", "Jump if register is 0. Target address is label"},
	OpJNZ:               {"JNZ", 0x51, 4, []OperandDesc{r(TypeRegister), r(TypeLabel)}, "if (i) PC = j;", "Jump if register is not 0. Target address is label"},
	OpDJNZ:              {"DJNZ", 0x52, 4, []OperandDesc{w(TypeRegister), r(TypeLabel)}, "if (--i) PC = j;", "Decrement and jump if not 0. Target address is label"},
	OpCJNE:              {"CJNE", 0x53, 5, []OperandDesc{r(TypeRegister), r(TypeRegister), r(TypeLabel)}, "if (i != j) {CY = i<j;PC = k}", "Compare and set CY, jump if not equal. Target is label"},
	OpCALL:              {"CALL", 0x54, 3, []OperandDesc{r(TypeLabel)}, "PUSH PC;PC=i;", "Call subroutine, target address is label"},
	OpRET:               {"RET", 0x55, 1, nil, "POP PC;", "Subroutine return"},
	OpAND:               {"AND", 0x56, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i&j;", "Bitwise AND"},
	OpAND8:              {"AND8", 0x57, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i&j;", "8-bit width"},
	OpAND16:             {"AND16", 0x7A, 4, []OperandDesc{w(TypeRegister), r(TypeU16)}, "i=i&j;", "16-bit width"},
	OpAND32:             {"AND32", 0x7F, 6, []OperandDesc{w(TypeRegister), r(TypeU32)}, "i=i&j;", "32-bit width"},
	OpADD_A:             {"ADD_A", 0x58, 2, []OperandDesc{r(TypeRegister)}, "A = A + i;", "Add to A register"},
	OpADD8_A:            {"ADD8_A", 0x59, 2, []OperandDesc{r(TypeU8)}, "A = A + i;", "8-bit immediate add to A"},
	OpSUB_A:             {"SUB_A", 0x5A, 2, []OperandDesc{r(TypeRegister)}, "A = A - i;", "Subtract from A register"},
	OpSUB8_A:            {"SUB8_A", 0x5B, 2, []OperandDesc{r(TypeU8)}, "A = A - i;", "8-bit immediate subtract from A"},
	OpOR_A:              {"OR_A", 0x5C, 2, []OperandDesc{r(TypeRegister)}, "A = A | i;", "Bitwise OR to A register"},
	OpOR8_A:             {"OR8_A", 0x5D, 2, []OperandDesc{r(TypeU8)}, "A = A | i;", "8-bit immediate bitwise OR to A"},
	OpDEC:               {"DEC", 0x5E, 2, []OperandDesc{w(TypeRegister)}, "i--;", "Decrement"},
	OpINC:               {"INC", 0x5F, 2, []OperandDesc{w(TypeRegister)}, "i++;", "Increment"},
	OpMUL_A:             {"MUL_A", 0x60, 1, nil, "A = A * B;", "Multiplication, result stored in A"},
	OpDIV_A:             {"DIV_A", 0x61, 1, nil, "A = A / B;B = A % B;", "Division, quotient in A, remainder in B"},
	OpIMUL_A:            {"IMUL_A", 0x8E, 1, nil, "A=A*B;", "Signed multiplication, result stored in A"},
	OpXOR:               {"XOR", 0x62, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i^j;", "Bitwise XOR"},
	OpXOR8:              {"XOR8", 0x63, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i^j;", "8-bit width"},
	OpXOR16:             {"XOR16", 0x7C, 4, []OperandDesc{w(TypeRegister), r(TypeU16)}, "i=i^j;", "16-bit width"},
	OpXOR32:             {"XOR32", 0x81, 6, []OperandDesc{w(TypeRegister), r(TypeU32)}, "i=i^j;", "32-bit width"},
	OpSHL:               {"SHL", 0x64, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i<<j;", "Logical left shift"},
	OpSHL8:              {"SHL8", 0x65, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i<<j;", "8-bit immediate"},
	OpSHR:               {"SHR", 0x66, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i>>j;", "Logical right shift"},
	OpSHR8:              {"SHR8", 0x67, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i>>j;", "8-bit immediate"},
	OpCLR:               {"CLR", 0x68, 2, []OperandDesc{w(TypeRegister)}, "i=0;", "Clear register"},
	OpNOT:               {"NOT", 0x69, 2, []OperandDesc{w(TypeRegister)}, "i=~i;", "Bitwise NOT"},
	OpXCH:               {"XCH", 0x6A, 3, []OperandDesc{w(TypeRegister), w(TypeRegister)}, "i <=> j;", "Exchange values of two registers"},
	OpCMP:               {"CMP", 0x6B, 3, []OperandDesc{r(TypeRegister), r(TypeRegister)}, "CY=i<j;", "Compare two registers and set CY flag"},
	OpADD:               {"ADD", 0x72, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i+j;", ""},
	OpADD8:              {"ADD8", 0x73, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i+j;", "8-bit width"},
	OpADD16:             {"ADD16", 0x74, 4, []OperandDesc{w(TypeRegister), r(TypeU16)}, "i=i+j;", "16-bit width"},
	OpADD32:             {"ADD32", 0x7D, 6, []OperandDesc{w(TypeRegister), r(TypeU32)}, "i=i+j;", "32-bit width"},
	OpSUB:               {"SUB", 0x75, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i-j;", ""},
	OpSUB8:              {"SUB8", 0x76, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i-j;", "8-bit width"},
	OpSUB16:             {"SUB16", 0x77, 4, []OperandDesc{w(TypeRegister), r(TypeU16)}, "i=i-j;", "16-bit width"},
	OpSUB32:             {"SUB32", 0x7E, 6, []OperandDesc{w(TypeRegister), r(TypeU32)}, "i=i-j;", "32-bit width"},
	OpOR:                {"OR", 0x78, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=i|j;", "Bitwise OR"},
	OpOR8:               {"OR8", 0x79, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=i|j;", "8-bit width"},
	OpOR16:              {"OR16", 0x7B, 4, []OperandDesc{w(TypeRegister), r(TypeU16)}, "i=i|j;", "16-bit width"},
	OpOR32:              {"OR32", 0x80, 6, []OperandDesc{w(TypeRegister), r(TypeU32)}, "i=i|j;", "32-bit width"},
	OpADD_R:             {"ADD_R", 0x82, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j+k;", "Three-operand addition"},
	OpSUB_R:             {"SUB_R", 0x83, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j-k;", "Three-operand subtraction"},
	OpAND_R:             {"AND_R", 0x84, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j&k;", "Three-operand bitwise AND"},
	OpOR_R:              {"OR_R", 0x85, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j|k;", "Three-operand bitwise OR"},
	OpXOR_R:             {"XOR_R", 0x86, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j^k;", "Three-operand bitwise XOR"},
	OpMUL_R:             {"MUL_R", 0x87, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j*k;", "Three-operand multiplication"},
	OpDIV_R:             {"DIV_R", 0x88, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j/k;", "Three-operand division"},
	OpMOD_R:             {"MOD_R", 0x89, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j%k;", "Three-operand modulo"},
	OpIMUL_R:            {"IMUL_R", 0x8F, 4, []OperandDesc{w(TypeRegister), r(TypeRegister), r(TypeRegister)}, "i=j*k;", "Three-operand signed multiplication"},
	OpPUSH:              {"PUSH", 0x6C, 2, []OperandDesc{r(TypeRegister)}, "", "Push to stack"},
	OpPOP:               {"POP", 0x6D, 2, []OperandDesc{w(TypeRegister)}, "", "Pop from stack"},
	OpMOV:               {"MOV", 0x6E, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i=j;", ""},
	OpMOV8:              {"MOV8", 0x6F, 3, []OperandDesc{w(TypeRegister), r(TypeU8)}, "i=j;", "8-bit width"},
	OpMOV16:             {"MOV16", 0x70, 4, []OperandDesc{w(TypeRegister), r(TypeU16)}, "i=j;", "16-bit width"},
	OpMOV32:             {"MOV32", 0x71, 6, []OperandDesc{w(TypeRegister), r(TypeU32)}, "i=j;", "32-bit width"},
	OpMOVSX8b:           {"MOVSX8b", 0x8A, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i = sign_extend(j);", "8-bit sign extend to target width"},
	OpMOVSX16b:          {"MOVSX16b", 0x8B, 3, []OperandDesc{w(TypeRegister), r(TypeRegister)}, "i = sign_extend(j);", "16-bit sign extend to target width"},
	OpMOV8SX:            {"MOV8SX", 0x8C, 3, []OperandDesc{w(TypeRegister), r(TypeI8)}, "i = sign_extend(imm8);", "8-bit immediate sign extend"},
	OpMOV16SX:           {"MOV16SX", 0x8D, 4, []OperandDesc{w(TypeRegister), r(TypeI16)}, "i = sign_extend(imm16);", "16-bit immediate sign extend"},
	OpLED_CTRL:          {"LED_CTRL", 0xE0, 2, []OperandDesc{r(TypeU8)}, "SELECTED_LED = i;", "0xff = release"},
	OpLED_COL:           {"LED_COL", 0xE1, 4, []OperandDesc{r(TypeRgb888)}, "SELECTED_LED_COL = i;", "RGB888 format"},
	OpSTART:             {"START", 0xE2, 2, []OperandDesc{r(TypeU8)}, "Start_key(i-1);", "0=all"},
	OpSTOP:              {"STOP", 0xE3, 2, []OperandDesc{r(TypeU8)}, "Stop_key(i-1);", "0=all"},
	OpSYCON:             {"SYCON", 0xE8, 2, []OperandDesc{r(TypeU8)}, "", "System control"},
	OpMALLOC:            {"MALLOC", 0xF0, 2, []OperandDesc{w(TypeRegister)}, "i=malloc(i);", ""},
	OpFREE:              {"FREE", 0xF1, 2, []OperandDesc{r(TypeRegister)}, "i=free(i);", ""},
	OpNEW_THREAD:        {"NEW_THREAD", 0xF2, 4, []OperandDesc{r(TypeU8), r(TypeRegister), r(TypeRegister)}, "i=TH ID;j=addr or keymode;k=V[4]", "Range of i is 0~3"},
	OpWHILE_UPDATE:      {"WHILE_UPDATE", 0xF4, 1, nil, "while (update_flag)Sleep(1);", "Wait for HID upload complete"},
	OpJMP_TO_SCRIPT:     {"JMP_TO_SCRIPT", 0xF5, 2, []OperandDesc{r(TypeU8)}, "", "Jump to other script (register data preserved, PC reset)"},
	OpMOV_PC2REG:        {"MOV_PC2REG", 0xF6, 2, []OperandDesc{w(TypeRegister)}, "i=PC;", "Save next instruction address to register"},
	OpVALUE_RELOAD:      {"VALUE_RELOAD", 0xF7, 2, []OperandDesc{w(TypeRegister)}, "i=Reload(reg);", "Reload script parameters"},
	OpMODE_JOG:          {"MODE_JOG", 0xF8, 1, nil, "", "Enter jog mode (key press won't be forcibly interrupted)"},
	OpWAIT_IF_RELEASE:   {"WAIT_IF_RELEASE", 0xF9, 1, nil, "while (IO) Sleep(1);", "If physical key is released, wait for press"},
	OpWAIT_IF_PRESS:     {"WAIT_IF_PRESS", 0xFA, 1, nil, "while (!IO) Sleep(1);", "If physical key is pressed, wait for release"},
	OpEXIT_IF_RELEAS:    {"EXIT_IF_RELEAS", 0xFB, 1, nil, "if (IO) exit();", "Exit if physical key is released"},
	OpEXIT_IF_PRESS:     {"EXIT_IF_PRESS", 0xFC, 1, nil, "if (!IO) exit();", "Exit if physical key is pressed"},
	OpEXIT_IF_ANYKEY:    {"EXIT_IF_ANYKEY", 0xFD, 1, nil, "if (SYS_KEY_COUNT != n) exit();", "n=key counter at script start. Exit on any key press"},
	OpRES:               {"RES", 0xFE, 1, nil, "PC = 0;", "Jump to program start, same as JMP 0"},
	OpEXIT:              {"EXIT", 0xFF, 1, nil, "exit();", "Exit script"},
}

var byName map[string]Mnemonic

func init() {
	byName = make(map[string]Mnemonic, len(descriptors))
	for m := range descriptors {
		byName[strings.ToUpper(descriptors[m].Name)] = Mnemonic(m)
	}
}

// Descriptor returns the table entry for m.
func (m Mnemonic) Descriptor() *Descriptor {
	if !m.Valid() {
		return nil
	}
	return &descriptors[m]
}

func (m Mnemonic) String() string {
	if d := m.Descriptor(); d != nil {
		return d.Name
	}
	return fmt.Sprintf("Mnemonic(%d)", int(m))
}

// Valid reports whether m names a table entry.
func (m Mnemonic) Valid() bool {
	return m >= 0 && m < mnemonicCount
}

// Lookup finds a mnemonic by name, ignoring case.
func Lookup(name string) (Mnemonic, bool) {
	m, ok := byName[strings.ToUpper(name)]
	return m, ok
}

// Mnemonics lists every mnemonic in declaration order.
func Mnemonics() []Mnemonic {
	out := make([]Mnemonic, mnemonicCount)
	for i := range out {
		out[i] = Mnemonic(i)
	}
	return out
}

// ByOpcode builds a reverse table for decoding.
func ByOpcode() map[byte]Mnemonic {
	out := make(map[byte]Mnemonic, mnemonicCount)
	for m := range descriptors {
		out[descriptors[m].Opcode] = Mnemonic(m)
	}
	return out
}

// Names returns all mnemonic names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, mnemonicCount)
	for m := range descriptors {
		names = append(names, descriptors[m].Name)
	}
	sort.Strings(names)
	return names
}
