package parsers

import "testing"

func TestExtractField(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		kind   FieldKind
		want   string
		wantOK bool
	}{
		{"event id", "Event ID: 4625", FieldEventID, "4625", true},
		{"event id indented lower case", "   event id:   4624  ", FieldEventID, "4624", true},
		{"event id with noise prefix", "\ufeff\x00Event ID: 4625", FieldEventID, "4625", true},
		{"event id not numeric", "Event ID: none", FieldEventID, "", false},
		{"date", "  Date: 2025-11-08 13:42:15", FieldTimestamp, "2025-11-08 13:42:15", true},
		{"account name", "\tAccount Name:\t\ttim", FieldAccount, "tim", true},
		{"user name", "User Name: alice", FieldAccount, "alice", true},
		{"empty account value", "Account Name:   ", FieldAccount, "", false},
		{"source address", "Source Network Address: 192.168.1.15", FieldSourceAddress, "192.168.1.15", true},
		{"source address dash", "Source Network Address: -", FieldSourceAddress, "", false},
		{"source address embedded quad", "Source Network Address: ::ffff:10.0.0.7 (mapped)", FieldSourceAddress, "10.0.0.7", true},
		{"source address raw vendor string", "Source Network Address: ::1", FieldSourceAddress, "::1", true},
		{"no label", "Logon Type: 3", FieldAccount, "", false},
		{"no label address", "Logon Type: 3", FieldSourceAddress, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractField(tt.line, tt.kind)
			if ok != tt.wantOK {
				t.Fatalf("ExtractField(%q, %s) ok = %v, want %v", tt.line, tt.kind, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractField(%q, %s) = %q, want %q", tt.line, tt.kind, got, tt.want)
			}
		})
	}
}

func TestExtractInlineIPv4(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Workstation 10.1.2.3 connected", "10.1.2.3"},
		{"Process Name: C:\\Windows\\10.0.19041.1\\lsass.exe", ""},
		{"Value 256.1.1.1", ""},
		{"nothing here", ""},
	}

	for _, tt := range tests {
		got, ok := ExtractInlineIPv4(tt.line)
		if got != tt.want || ok != (tt.want != "") {
			t.Errorf("ExtractInlineIPv4(%q) = %q, %v; want %q", tt.line, got, ok, tt.want)
		}
	}
}

func TestPreferAccount(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"machine then human", []string{"WS01$", "tim"}, "tim"},
		{"human then machine", []string{"tim", "WS01$"}, "tim"},
		{"placeholder then human", []string{"N/A", "bob"}, "bob"},
		{"dash then human", []string{"-", "bob"}, "bob"},
		{"first human wins", []string{"alice", "bob"}, "alice"},
		{"machine beats placeholder", []string{"n/a", "SRV$"}, "SRV$"},
		{"placeholder kept as last resort", []string{"N/A"}, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ""
			for _, c := range tt.candidates {
				got = PreferAccount(got, c)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
