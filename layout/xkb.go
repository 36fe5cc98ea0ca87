package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEmptyKeymap is returned when a keymap description contains no keycodes.
var ErrEmptyKeymap = errors.New("keymap has no keycodes")

// ParseError reports a syntax error in a keymap description.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("keymap line %d: %s", e.Line, e.Msg)
}

// Keymap is a Source parsed from the compiled XKB keymap text format. Only the
// first group of each key is used.
type Keymap struct {
	name     string
	min, max Keycode
	names    map[Keycode]string
	byName   map[string]Keycode
	levels   map[Keycode][][]Keysym
}

// ParseKeymapString parses a compiled XKB keymap held in memory.
func ParseKeymapString(s string) (*Keymap, error) {
	return ParseKeymap(strings.NewReader(s))
}

// ParseKeymap parses a compiled XKB keymap ("xkb_keymap { ... };") as
// produced by xkbcli compile-keymap or sent by a Wayland compositor.
func ParseKeymap(r io.Reader) (*Keymap, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmptyKeymap
	}
	p := &parser{toks: toks}
	km := &Keymap{
		names:  map[Keycode]string{},
		byName: map[string]Keycode{},
		levels: map[Keycode][][]Keysym{},
	}
	if err := p.keymap(km); err != nil {
		return nil, err
	}
	if len(km.names) == 0 {
		return nil, ErrEmptyKeymap
	}
	return km, nil
}

func (k *Keymap) Name() string { return k.name }

func (k *Keymap) KeyRange() (Keycode, Keycode) { return k.min, k.max }

func (k *Keymap) KeyName(code Keycode) (string, bool) {
	n, ok := k.names[code]
	return n, ok
}

func (k *Keymap) LevelCount(code Keycode) int { return len(k.levels[code]) }

func (k *Keymap) SymbolsAt(code Keycode, level int) []Keysym {
	lv := k.levels[code]
	if level < 0 || level >= len(lv) {
		return nil
	}
	return lv[level]
}

type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokString
	tokKeyName
	tokPunct
)

type token struct {
	kind tokKind
	text string
	line int
}

func tokenize(r io.Reader) ([]token, error) {
	br := bufio.NewReader(r)
	var toks []token
	line := 1
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return nil, err
		}
		switch {
		case c == '\n':
			line++
		case c == ' ' || c == '\t' || c == '\r':
		case c == '#':
			skipLine(br)
			line++
		case c == '/':
			next, _, err := br.ReadRune()
			if err != nil || next != '/' {
				return nil, &ParseError{Line: line, Msg: "unexpected '/'"}
			}
			skipLine(br)
			line++
		case c == '"':
			s, err := br.ReadString('"')
			if err != nil {
				return nil, &ParseError{Line: line, Msg: "unterminated string"}
			}
			line += strings.Count(s, "\n")
			toks = append(toks, token{kind: tokString, text: strings.TrimSuffix(s, `"`), line: line})
		case c == '<':
			s, err := br.ReadString('>')
			if err != nil || strings.ContainsAny(s, " \n\t") {
				return nil, &ParseError{Line: line, Msg: "malformed key name"}
			}
			toks = append(toks, token{kind: tokKeyName, text: strings.TrimSuffix(s, ">"), line: line})
		case strings.ContainsRune("{}[]()=;,+!-.~:*&|?", c):
			toks = append(toks, token{kind: tokPunct, text: string(c), line: line})
		case isIdentRune(c):
			var sb strings.Builder
			sb.WriteRune(c)
			for {
				n, _, err := br.ReadRune()
				if err != nil {
					break
				}
				if !isIdentRune(n) {
					_ = br.UnreadRune()
					break
				}
				sb.WriteRune(n)
			}
			kind := tokIdent
			if c >= '0' && c <= '9' && isNumber(sb.String()) {
				kind = tokNumber
			}
			toks = append(toks, token{kind: kind, text: sb.String(), line: line})
		default:
			return nil, &ParseError{Line: line, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
}

func skipLine(br *bufio.Reader) {
	_, _ = br.ReadString('\n')
}

func isIdentRune(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isNumber(s string) bool {
	_, err := strconv.ParseUint(s, 0, 32)
	return err == nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) eof() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() token {
	if p.eof() {
		return token{kind: tokPunct, line: p.lastLine()}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) lastLine() int {
	if len(p.toks) == 0 {
		return 1
	}
	return p.toks[len(p.toks)-1].line
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return !p.eof() && t.kind == tokPunct && t.text == text
}

func (p *parser) expect(text string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != text {
		return p.errorf(t, "expected %q, got %q", text, t.text)
	}
	return nil
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &ParseError{Line: t.line, Msg: fmt.Sprintf(format, args...)}
}

// keymap parses: xkb_keymap ["name"] { section* } ;
func (p *parser) keymap(km *Keymap) error {
	t := p.next()
	if t.kind != tokIdent || t.text != "xkb_keymap" {
		return p.errorf(t, "expected xkb_keymap, got %q", t.text)
	}
	if p.peek().kind == tokString {
		p.next()
	}
	if err := p.expect("{"); err != nil {
		return err
	}
	for !p.is("}") {
		if p.eof() {
			return p.errorf(p.peek(), "unterminated xkb_keymap block")
		}
		if err := p.section(km); err != nil {
			return err
		}
	}
	p.next()
	if p.is(";") {
		p.next()
	}
	if km.min == 0 && km.max == 0 {
		km.min, km.max = km.observedRange()
	}
	return nil
}

func (p *parser) section(km *Keymap) error {
	t := p.next()
	if t.kind != tokIdent {
		return p.errorf(t, "expected section, got %q", t.text)
	}
	name := ""
	if p.peek().kind == tokString {
		name = p.next().text
	}
	if err := p.expect("{"); err != nil {
		return err
	}
	var err error
	switch t.text {
	case "xkb_keycodes":
		err = p.keycodes(km)
	case "xkb_symbols":
		err = p.symbols(km, name)
	default:
		err = p.skipBlock()
	}
	if err != nil {
		return err
	}
	if p.is(";") {
		p.next()
	}
	return nil
}

// skipBlock consumes tokens up to and including the "}" closing the block
// whose "{" was already consumed.
func (p *parser) skipBlock() error {
	depth := 1
	for depth > 0 {
		if p.eof() {
			return p.errorf(p.peek(), "unbalanced braces")
		}
		t := p.next()
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "{":
			depth++
		case "}":
			depth--
		}
	}
	return nil
}

// skipStatement consumes tokens up to and including the next top level ";".
func (p *parser) skipStatement() error {
	depth := 0
	for {
		if p.eof() {
			return p.errorf(p.peek(), "unterminated statement")
		}
		t := p.next()
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "{", "[", "(":
			depth++
		case "}", "]", ")":
			depth--
		case ";":
			if depth <= 0 {
				return nil
			}
		}
	}
}

func (p *parser) keycodes(km *Keymap) error {
	aliases := map[string]string{}
	codes := map[string]Keycode{}
	for !p.is("}") {
		if p.eof() {
			return p.errorf(p.peek(), "unterminated xkb_keycodes block")
		}
		t := p.peek()
		switch {
		case t.kind == tokKeyName:
			p.next()
			if err := p.expect("="); err != nil {
				return err
			}
			n := p.next()
			v, err := strconv.ParseUint(n.text, 0, 32)
			if n.kind != tokNumber || err != nil {
				return p.errorf(n, "invalid keycode %q for <%s>", n.text, t.text)
			}
			codes[t.text] = Keycode(v)
			if err := p.expect(";"); err != nil {
				return err
			}
		case t.kind == tokIdent && t.text == "alias":
			p.next()
			alias := p.next()
			if alias.kind != tokKeyName {
				return p.errorf(alias, "expected key name after alias")
			}
			if err := p.expect("="); err != nil {
				return err
			}
			target := p.next()
			if target.kind != tokKeyName {
				return p.errorf(target, "expected key name as alias target")
			}
			aliases[alias.text] = target.text
			if err := p.expect(";"); err != nil {
				return err
			}
		case t.kind == tokIdent && (t.text == "minimum" || t.text == "maximum"):
			p.next()
			if err := p.expect("="); err != nil {
				return err
			}
			n := p.next()
			v, err := strconv.ParseUint(n.text, 0, 32)
			if err != nil {
				return p.errorf(n, "invalid %s %q", t.text, n.text)
			}
			if t.text == "minimum" {
				km.min = Keycode(v)
			} else {
				km.max = Keycode(v)
			}
			if err := p.expect(";"); err != nil {
				return err
			}
		default:
			if err := p.skipStatement(); err != nil {
				return err
			}
		}
	}
	p.next()

	for name, code := range codes {
		// Several names may share a code; keep the lexically smallest so the
		// result does not depend on map order.
		if prev, ok := km.names[code]; !ok || name < prev {
			km.names[code] = name
		}
	}
	km.resolveNames(aliases, codes)
	return nil
}

// resolveNames records every key name and alias the symbols section may use.
func (km *Keymap) resolveNames(aliases map[string]string, codes map[string]Keycode) {
	for name, code := range codes {
		km.byName[name] = code
	}
	for alias, target := range aliases {
		if code, ok := codes[target]; ok {
			km.byName[alias] = code
		}
	}
}

func (km *Keymap) observedRange() (Keycode, Keycode) {
	first := true
	var min, max Keycode
	for code := range km.names {
		if first || code < min {
			min = code
		}
		if first || code > max {
			max = code
		}
		first = false
	}
	return min, max
}

func (p *parser) symbols(km *Keymap, sectionName string) error {
	for !p.is("}") {
		if p.eof() {
			return p.errorf(p.peek(), "unterminated xkb_symbols block")
		}
		t := p.peek()
		switch {
		case t.kind == tokIdent && t.text == "key":
			if err := p.key(km); err != nil {
				return err
			}
		case t.kind == tokIdent && t.text == "name":
			// name[Group1]="English (US)";
			p.next()
			group, err := p.groupIndex()
			if err != nil {
				return err
			}
			if err := p.expect("="); err != nil {
				return err
			}
			v := p.next()
			if group == 0 && v.kind == tokString && km.name == "" {
				km.name = v.text
			}
			if err := p.expect(";"); err != nil {
				return err
			}
		default:
			if err := p.skipStatement(); err != nil {
				return err
			}
		}
	}
	p.next()
	if km.name == "" {
		km.name = sectionName
	}
	return nil
}

// groupIndex parses an optional "[GroupN]" or "[N]" suffix and returns the
// zero based group, or 0 when absent.
func (p *parser) groupIndex() (int, error) {
	if !p.is("[") {
		return 0, nil
	}
	p.next()
	t := p.next()
	text := strings.TrimPrefix(strings.ToLower(t.text), "group")
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 {
		return 0, p.errorf(t, "invalid group %q", t.text)
	}
	if err := p.expect("]"); err != nil {
		return 0, err
	}
	return n - 1, nil
}

// key parses: key <NAME> { item, item, ... } ;
func (p *parser) key(km *Keymap) error {
	p.next()
	nameTok := p.next()
	if nameTok.kind != tokKeyName {
		return p.errorf(nameTok, "expected key name after 'key'")
	}
	if err := p.expect("{"); err != nil {
		return err
	}
	var group1 [][]Keysym
	implicitGroup := 0
	for !p.is("}") {
		if p.eof() {
			return p.errorf(p.peek(), "unterminated key <%s>", nameTok.text)
		}
		switch t := p.peek(); {
		case t.kind == tokPunct && t.text == "[":
			levels, err := p.levelList()
			if err != nil {
				return err
			}
			if implicitGroup == 0 {
				group1 = levels
			}
			implicitGroup++
		case t.kind == tokIdent && t.text == "symbols":
			p.next()
			group, err := p.groupIndex()
			if err != nil {
				return err
			}
			if err := p.expect("="); err != nil {
				return err
			}
			levels, err := p.levelList()
			if err != nil {
				return err
			}
			if group == 0 {
				group1 = levels
			}
		default:
			if err := p.skipItem(); err != nil {
				return err
			}
		}
		if p.is(",") {
			p.next()
		}
	}
	p.next()
	if p.is(";") {
		p.next()
	}
	if code, ok := km.byName[nameTok.text]; ok && len(group1) > 0 {
		km.levels[code] = group1
	}
	return nil
}

// skipItem consumes one comma separated item inside a key block, such as
// type= "TWO_LEVEL" or actions[Group1]= [ ... ].
func (p *parser) skipItem() error {
	depth := 0
	for {
		if p.eof() {
			return p.errorf(p.peek(), "unterminated key item")
		}
		t := p.peek()
		if t.kind == tokPunct {
			switch t.text {
			case "{", "[", "(":
				depth++
			case "]", ")":
				depth--
			case "}":
				if depth == 0 {
					return nil
				}
				depth--
			case ",":
				if depth == 0 {
					return nil
				}
			}
		}
		p.next()
	}
}

// levelList parses: [ sym, { sym, sym }, ... ]
func (p *parser) levelList() ([][]Keysym, error) {
	if err := p.expect("["); err != nil {
		return nil, err
	}
	var levels [][]Keysym
	for !p.is("]") {
		if p.eof() {
			return nil, p.errorf(p.peek(), "unterminated symbol list")
		}
		if p.is("{") {
			p.next()
			var syms []Keysym
			for !p.is("}") {
				ks, err := p.keysym()
				if err != nil {
					return nil, err
				}
				if ks != NoSymbol {
					syms = append(syms, ks)
				}
				if p.is(",") {
					p.next()
				}
			}
			p.next()
			levels = append(levels, syms)
		} else {
			ks, err := p.keysym()
			if err != nil {
				return nil, err
			}
			if ks == NoSymbol {
				levels = append(levels, nil)
			} else {
				levels = append(levels, []Keysym{ks})
			}
		}
		if p.is(",") {
			p.next()
		}
	}
	p.next()
	return levels, nil
}

func (p *parser) keysym() (Keysym, error) {
	t := p.next()
	if t.kind != tokIdent && t.kind != tokNumber {
		return NoSymbol, p.errorf(t, "expected keysym, got %q", t.text)
	}
	// Numeric keysyms: single digits are names, longer numbers are values.
	if t.kind == tokNumber && len(t.text) > 1 {
		v, _ := strconv.ParseUint(t.text, 0, 32)
		return Keysym(v), nil
	}
	if ks, ok := KeysymFromName(t.text); ok {
		return ks, nil
	}
	// Unknown names are kept as NoSymbol rather than failing the whole map;
	// xkbcommon emits every keysym it knows, which is more than we name.
	return NoSymbol, nil
}
