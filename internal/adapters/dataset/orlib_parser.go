package dataset

import (
	"bufio"
	"fmt"
	"io"
	"landing-sequencer-service/internal/domain"
	"strconv"
	"strings"
)

// Layout selects how aircraft landing data files are laid out.
type Layout string

const (
	// LayoutORLib is the OR-Library airland format: a whitespace token
	// stream of "N freezeTime", then per aircraft
	// "appearance ELT TLT LLT early late" followed by its N separation
	// values. Rows may wrap across lines.
	LayoutORLib Layout = "orlib"

	// LayoutReference is line oriented: line 1 holds N, the next N lines
	// hold one aircraft each with ELT TLT LLT early late in fields 2..6, and
	// the next N lines hold one separation row each.
	LayoutReference Layout = "reference"
)

func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutORLib, LayoutReference:
		return l, nil
	default:
		return "", fmt.Errorf("unknown dataset layout %q (want %q or %q)", s, LayoutORLib, LayoutReference)
	}
}

// Parse reads a dataset in the given layout. Aircraft are named FL0..FL(N-1)
// and indexed in file order.
func Parse(r io.Reader, layout Layout, name string) (domain.Dataset, error) {
	var (
		ds  domain.Dataset
		err error
	)

	switch layout {
	case LayoutORLib:
		ds, err = parseORLib(r)
	case LayoutReference:
		ds, err = parseReference(r)
	default:
		return domain.Dataset{}, fmt.Errorf("parse dataset: unknown layout %q", layout)
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("parse dataset %q: %w", name, err)
	}

	ds.Name = name
	return ds, nil
}

func parseORLib(r io.Reader) (domain.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	pos := 0
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("read %s: %w", what, err)
			}
			return "", fmt.Errorf("%w: unexpected end of input reading %s (token %d)", domain.ErrMalformedDataset, what, pos)
		}
		pos++
		return sc.Text(), nil
	}
	nextInt := func(what string) (int, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		return atoi(tok, what)
	}
	nextFloat := func(what string) (float64, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		return atof(tok, what)
	}

	n, err := nextInt("aircraft count")
	if err != nil {
		return domain.Dataset{}, err
	}
	if n < 0 {
		return domain.Dataset{}, fmt.Errorf("%w: negative aircraft count %d", domain.ErrMalformedDataset, n)
	}
	if _, err := nextInt("freeze time"); err != nil {
		return domain.Dataset{}, err
	}

	planes := make([]domain.Aircraft, 0, n)
	sep := make(domain.SeparationMatrix, 0, n)
	for i := 0; i < n; i++ {
		label := "aircraft " + strconv.Itoa(i)

		if _, err := nextInt(label + " appearance time"); err != nil {
			return domain.Dataset{}, err
		}

		p := domain.Aircraft{FlightID: flightID(i), OriginalIndex: i}
		if p.ELT, err = nextInt(label + " ELT"); err != nil {
			return domain.Dataset{}, err
		}
		if p.TLT, err = nextInt(label + " TLT"); err != nil {
			return domain.Dataset{}, err
		}
		if p.LLT, err = nextInt(label + " LLT"); err != nil {
			return domain.Dataset{}, err
		}
		if p.EarlyPenalty, err = nextFloat(label + " early penalty"); err != nil {
			return domain.Dataset{}, err
		}
		if p.LatePenalty, err = nextFloat(label + " late penalty"); err != nil {
			return domain.Dataset{}, err
		}

		row := make([]int, n)
		for j := range row {
			if row[j], err = nextInt(fmt.Sprintf("separation[%d][%d]", i, j)); err != nil {
				return domain.Dataset{}, err
			}
		}

		planes = append(planes, p)
		sep = append(sep, row)
	}

	return domain.Dataset{Aircraft: planes, Separation: sep}, nil
}

func parseReference(r io.Reader) (domain.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func(what string) ([]string, error) {
		for sc.Scan() {
			lineNo++
			if fields := strings.Fields(sc.Text()); len(fields) > 0 {
				return fields, nil
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", what, err)
		}
		return nil, fmt.Errorf("%w: unexpected end of input reading %s (line %d)", domain.ErrMalformedDataset, what, lineNo)
	}

	header, err := nextLine("aircraft count")
	if err != nil {
		return domain.Dataset{}, err
	}
	n, err := atoi(header[0], "aircraft count")
	if err != nil {
		return domain.Dataset{}, err
	}
	if n < 0 {
		return domain.Dataset{}, fmt.Errorf("%w: negative aircraft count %d", domain.ErrMalformedDataset, n)
	}

	planes := make([]domain.Aircraft, 0, n)
	for i := 0; i < n; i++ {
		label := "aircraft " + strconv.Itoa(i)
		fields, err := nextLine(label)
		if err != nil {
			return domain.Dataset{}, err
		}
		if len(fields) < 7 {
			return domain.Dataset{}, fmt.Errorf(
				"%w: line %d: %s has %d fields, need 7",
				domain.ErrMalformedDataset, lineNo, label, len(fields),
			)
		}

		p := domain.Aircraft{FlightID: flightID(i), OriginalIndex: i}
		if p.ELT, err = atoi(fields[2], label+" ELT"); err != nil {
			return domain.Dataset{}, err
		}
		if p.TLT, err = atoi(fields[3], label+" TLT"); err != nil {
			return domain.Dataset{}, err
		}
		if p.LLT, err = atoi(fields[4], label+" LLT"); err != nil {
			return domain.Dataset{}, err
		}
		if p.EarlyPenalty, err = atof(fields[5], label+" early penalty"); err != nil {
			return domain.Dataset{}, err
		}
		if p.LatePenalty, err = atof(fields[6], label+" late penalty"); err != nil {
			return domain.Dataset{}, err
		}
		planes = append(planes, p)
	}

	sep := make(domain.SeparationMatrix, 0, n)
	for i := 0; i < n; i++ {
		fields, err := nextLine(fmt.Sprintf("separation row %d", i))
		if err != nil {
			return domain.Dataset{}, err
		}
		if len(fields) != n {
			return domain.Dataset{}, fmt.Errorf(
				"%w: line %d: separation row %d has %d values, want %d",
				domain.ErrMalformedDataset, lineNo, i, len(fields), n,
			)
		}

		row := make([]int, n)
		for j, f := range fields {
			if row[j], err = atoi(f, fmt.Sprintf("separation[%d][%d]", i, j)); err != nil {
				return domain.Dataset{}, err
			}
		}
		sep = append(sep, row)
	}

	return domain.Dataset{Aircraft: planes, Separation: sep}, nil
}

func flightID(i int) string { return "FL" + strconv.Itoa(i) }

func atoi(s, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not an integer", domain.ErrMalformedDataset, what, s)
	}
	return v, nil
}

func atof(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", domain.ErrMalformedDataset, what, s)
	}
	return v, nil
}
