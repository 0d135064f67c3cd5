package ir

// Op is the opcode of a micro-op. The set is fixed; passes that meet an
// opcode they do not handle must skip it rather than fail, so new opcodes
// can be added without breaking existing analyses.
type Op int

const (
	// Structure.
	OpConst        Op = iota // literal value, Arg is int64
	OpDefineVar              // launch-time symbolic variable, Arg is sym.Var
	OpDefineGlobal           // global buffer slot, Arg is the slot index (int)
	OpDefineLocal            // shared-memory buffer, Arg is the byte size (int)
	OpRange                  // loop begin, Src[0]=lower bound, Src[1]=upper bound
	OpEndRange               // loop end, Src[0]=the matching OpRange
	OpSpecial                // hardware dispatch index, Arg is SpecialArg
	OpIf                     // conditional execution begin, Src[0]=predicate
	OpEndIf                  // conditional execution end

	// Memory.
	OpIndex // address computation, Src[0]=buffer, Src[1]=index expression
	OpLoad  // Src[0]=address, optional Src[1]=alt value, Src[2]=gate
	OpStore // Src[0]=address, Src[1]=value, optional Src[2]=gate

	// ALU group.
	OpAdd
	OpSub
	OpMul
	OpFDiv
	OpIDiv
	OpMod
	OpNeg
	OpMax
	OpMulAcc // fused multiply-accumulate, counts as two flops per element
	OpCmpLt
	OpCmpNe
	OpWhere
	OpExp2
	OpLog2
	OpSin
	OpSqrt
	OpRecip

	// Conversions are not charged as ALU work.
	OpCast

	// Accelerated matrix multiply, Arg is WMMAArg.
	OpWMMA
)

var opNames = map[Op]string{
	OpConst: "CONST", OpDefineVar: "DEFINE_VAR", OpDefineGlobal: "DEFINE_GLOBAL",
	OpDefineLocal: "DEFINE_LOCAL", OpRange: "RANGE", OpEndRange: "ENDRANGE",
	OpSpecial: "SPECIAL", OpIf: "IF", OpEndIf: "ENDIF",
	OpIndex: "INDEX", OpLoad: "LOAD", OpStore: "STORE",
	OpAdd: "ADD", OpSub: "SUB", OpMul: "MUL", OpFDiv: "FDIV", OpIDiv: "IDIV",
	OpMod: "MOD", OpNeg: "NEG", OpMax: "MAX", OpMulAcc: "MULACC",
	OpCmpLt: "CMPLT", OpCmpNe: "CMPNE", OpWhere: "WHERE",
	OpExp2: "EXP2", OpLog2: "LOG2", OpSin: "SIN", OpSqrt: "SQRT",
	OpRecip: "RECIP", OpCast: "CAST", OpWMMA: "WMMA",
}

// String returns the opcode mnemonic.
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsALU reports whether the op belongs to the primary ALU group, the ops
// charged as floating-point work by the cost estimator.
func (o Op) IsALU() bool {
	return o >= OpAdd && o <= OpRecip
}
