package docgen

import (
	"io"
	"strings"
)

const indentUnit = "  "

type Formatter interface {
	FormatOperations(operations []*Operation)
	FormatOperation(operation *Operation)
}

func NewFormatter(w io.Writer) Formatter {
	return &formatter{writer: w}
}

type formatter struct {
	writer io.Writer

	indent int
}

func (f *formatter) writeString(s string) {
	_, _ = f.writer.Write([]byte(s))
}

func (f *formatter) writeIndent() {
	f.writeString(strings.Repeat(indentUnit, f.indent))
}

// FormatOperations writes operations separated by two blank lines when they
// share a kind, three when the kind changes.
func (f *formatter) FormatOperations(operations []*Operation) {
	for i, operation := range operations {
		if i != 0 {
			if operations[i-1].Kind == operation.Kind {
				f.writeString("\n\n")
			} else {
				f.writeString("\n\n\n")
			}
		}
		f.FormatOperation(operation)
	}
}

func (f *formatter) FormatOperation(operation *Operation) {
	f.writeString(string(operation.Kind))
	f.writeString(" ")
	f.writeString(operation.Name)

	if len(operation.Variables) != 0 {
		f.writeString("(")
		for i, variable := range operation.Variables {
			if i != 0 {
				f.writeString(", ")
			}
			f.writeString("$")
			f.writeString(variable.Name)
			f.writeString(": ")
			f.writeString(variable.Type.String())
		}
		f.writeString(")")
	}

	f.writeString(" { \n")
	f.indent++
	if operation.Selection != nil {
		f.FormatSelection(operation.Selection)
	}
	f.indent--
	f.writeString("}")
}

func (f *formatter) FormatSelection(selection *Selection) {
	f.writeIndent()
	f.writeString(selection.Name)

	if len(selection.Arguments) != 0 {
		f.writeString("(")
		for i, arg := range selection.Arguments {
			if i != 0 {
				f.writeString(", ")
			}
			f.writeString(arg.Name)
			f.writeString(": $")
			f.writeString(arg.Variable)
		}
		f.writeString(")")
	}

	if selection.Selections == nil {
		f.writeString("\n")
		return
	}

	f.writeString(" {\n")
	f.indent++
	for _, child := range selection.Selections {
		f.FormatSelection(child)
	}
	f.indent--
	f.writeIndent()
	f.writeString("}\n")
}
