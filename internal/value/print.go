package value

import (
	"strconv"
	"strings"
)

// Display renders v the way `display` does: strings lose their quotes,
// everything else looks the same as Write.
func Display(v Value) string {
	return render(v, false)
}

// Write renders v the way `print` does: the read-syntax form, with
// strings re-quoted.
func Write(v Value) string {
	return render(v, true)
}

func render(v Value, quoted bool) string {
	switch t := v.(type) {
	case Boolean:
		if t {
			return "#t"
		}
		return "#f"
	case Integer:
		return strconv.FormatInt(int64(t), 10)
	case Real:
		return formatReal(float64(t))
	case String:
		if quoted {
			return strconv.Quote(string(t))
		}
		return string(t)
	case Symbol:
		return string(t)
	case EmptyListValue:
		return "()"
	case UnspecifiedValue:
		return "undefined"
	case *Pair:
		return renderPair(t, quoted)
	case *PrimitiveProcedure:
		return "#<primitive:" + t.Name + ">"
	case *LambdaProcedure:
		if t.Name != "" {
			return "#<procedure:" + t.Name + ">"
		}
		return "#<procedure>"
	case *DynamicLambdaProcedure:
		return "#<procedure:dynamic>"
	case *MacroProcedure:
		return "#<macro:" + t.Name + ">"
	case *Promise:
		return "#<promise>"
	case *TailPromise:
		// Never user-visible; rendered only to aid debugging an interpreter
		// bug, not as normal output.
		return "#<tail-call>"
	default:
		return "#<unknown>"
	}
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

func renderPair(p *Pair, quoted bool) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(render(p.First, quoted))
	rest := p.Rest
	for {
		switch t := rest.(type) {
		case EmptyListValue:
			sb.WriteByte(')')
			return sb.String()
		case *Pair:
			sb.WriteByte(' ')
			sb.WriteString(render(t.First, quoted))
			rest = t.Rest
		default:
			sb.WriteString(" . ")
			sb.WriteString(render(rest, quoted))
			sb.WriteByte(')')
			return sb.String()
		}
	}
}
