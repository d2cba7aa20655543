package carbono

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputWriter_WritelAppendsNewline(t *testing.T) {
	w := newOutputWriter("  ")
	w.writel("int x = 1;")
	w.writel("int y = 2;")
	assert.Equal(t, "int x = 1;\nint y = 2;\n", w.buffer.String())
}

func TestOutputWriter_IndentNestsWriteil(t *testing.T) {
	w := newOutputWriter("  ")
	w.writeil("if (x) {")
	w.indent()
	w.writeil("do_thing();")
	w.unindent()
	w.writeil("}")
	assert.Equal(t, "if (x) {\n  do_thing();\n}\n", w.buffer.String())
}

func TestOutputWriter_WriteiDoesNotAppendNewline(t *testing.T) {
	w := newOutputWriter("\t")
	w.indent()
	w.writei("partial")
	w.write(" line\n")
	assert.Equal(t, "\tpartial line\n", w.buffer.String())
}
