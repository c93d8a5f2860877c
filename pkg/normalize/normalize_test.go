package normalize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "question with accents and punctuation",
			in:   "¿Qué EVALUACIÓN tiene Matrix?",
			want: "que evaluacion tiene matrix",
		},
		{
			name: "exclamations and commas",
			in:   "¡Hola, recomiéndame algo de acción!",
			want: "hola recomiendame algo de accion",
		},
		{
			name: "surrounding whitespace",
			in:   "  donde puedo ver Inception  ",
			want: "donde puedo ver inception",
		},
		{
			name: "tilde counts as a combining mark",
			in:   "una película de España",
			want: "una pelicula de espana",
		},
		{
			name: "colon and semicolon removed",
			in:   "mira: esto; eso.",
			want: "mira esto eso",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	in := "¿Dónde puedo ver Coralínea?"
	once := Clean(in)
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean is not idempotent: %q != %q", once, twice)
	}
}
