package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/weeklyreport/internal/model"
)

func TestTableRows(t *testing.T) {
	t.Parallel()

	columns := []string{"date", "region", "details", "impact"}

	t.Run("renders cells in column order", func(t *testing.T) {
		t.Parallel()
		records := []model.Record{
			{"impact": "I", "date": "D", "details": "T", "region": "R"},
		}
		got := TableRows(records, columns)
		want := "      <tr>\n" +
			"        <td>D</td>\n" +
			"        <td>R</td>\n" +
			"        <td>T</td>\n" +
			"        <td>I</td>\n" +
			"      </tr>\n"
		if got != want {
			t.Errorf("unexpected rows:\n got %q\nwant %q", got, want)
		}
	})

	t.Run("missing columns render empty cells", func(t *testing.T) {
		t.Parallel()
		got := TableRows([]model.Record{{"date": "D"}}, columns)
		if strings.Count(got, "<td></td>") != 3 {
			t.Errorf("expected three empty cells, got %q", got)
		}
	})

	t.Run("one row per record", func(t *testing.T) {
		t.Parallel()
		records := []model.Record{{"date": "1"}, {"date": "2"}, {"date": "3"}}
		if got := strings.Count(TableRows(records, columns), "<tr>"); got != 3 {
			t.Errorf("expected 3 rows, got %d", got)
		}
	})

	t.Run("markup passes through unescaped", func(t *testing.T) {
		t.Parallel()
		got := TableRows([]model.Record{{"date": "<script>alert(1)</script>", "region": "<strong>美国</strong>"}}, columns)
		if !strings.Contains(got, "<td><script>alert(1)</script></td>") {
			t.Errorf("expected raw script tag, got %q", got)
		}
		if !strings.Contains(got, "<td><strong>美国</strong></td>") {
			t.Errorf("expected raw strong tag, got %q", got)
		}
	})

	t.Run("no records", func(t *testing.T) {
		t.Parallel()
		if got := TableRows(nil, columns); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}
	})
}

func TestTableBody(t *testing.T) {
	t.Parallel()

	if got := TableBody("ROWS"); got != "\nROWS    " {
		t.Errorf("unexpected body %q", got)
	}
	if got := CompactTableBody("ROWS"); got != "\n      ROWS" {
		t.Errorf("unexpected compact body %q", got)
	}
	if got := ListBody("ITEMS"); got != "\nITEMS" {
		t.Errorf("unexpected list body %q", got)
	}
}

func TestCompactRows(t *testing.T) {
	t.Parallel()

	got := CompactRows([]model.Record{{"a": "1", "b": "2"}}, []string{"b", "a"})
	if got != "<tr><td>2</td><td>1</td></tr>\n      " {
		t.Errorf("unexpected rows %q", got)
	}
}

func TestWatchlistRows(t *testing.T) {
	t.Parallel()

	got := WatchlistRows([]model.Record{{"focus": "钢价", "timing": "下周", "impact": "高"}})
	want := "      <tr>\n" +
		"        <td><strong>钢价</strong></td>\n" +
		"        <td>下周</td>\n" +
		"        <td>高</td>\n" +
		"      </tr>\n"
	if got != want {
		t.Errorf("unexpected rows:\n got %q\nwant %q", got, want)
	}
}

func TestListItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		point string
		index int
		style SynthesisStyle
		want  string
	}{
		{
			name:  "title split on full-width colon (plain)",
			point: "趋势：需求上升",
			index: 1,
			style: SynthesisPlain,
			want:  "    <li><strong>趋势：</strong>需求上升</li>\n",
		},
		{
			name:  "title split on full-width colon (numbered)",
			point: "趋势：需求上升",
			index: 1,
			style: SynthesisNumbered,
			want:  "    <li><strong>趋势：</strong>需求上升</li>\n",
		},
		{
			name:  "only the first colon splits",
			point: "价格：上涨：约5%",
			index: 1,
			style: SynthesisPlain,
			want:  "    <li><strong>价格：</strong>上涨：约5%</li>\n",
		},
		{
			name:  "ascii colon does not split",
			point: "会议时间 10:30",
			index: 1,
			style: SynthesisPlain,
			want:  "    <li>会议时间 10:30</li>\n",
		},
		{
			name:  "no colon renders plain item",
			point: "无冒号要点",
			index: 1,
			style: SynthesisPlain,
			want:  "    <li>无冒号要点</li>\n",
		},
		{
			name:  "no colon renders numbered item",
			point: "无冒号要点",
			index: 1,
			style: SynthesisNumbered,
			want:  "    <li><strong>要点1：</strong>无冒号要点</li>\n",
		},
		{
			name:  "numbering follows position",
			point: "无冒号要点",
			index: 3,
			style: SynthesisNumbered,
			want:  "    <li><strong>要点3：</strong>无冒号要点</li>\n",
		},
		{
			name:  "pre-formatted point kept in numbered style",
			point: "<strong>成本：</strong>钢材上涨",
			index: 1,
			style: SynthesisNumbered,
			want:  "    <li><strong>成本：</strong>钢材上涨</li>\n",
		},
		{
			name:  "pre-formatted point is split in plain style",
			point: "<strong>成本：</strong>钢材上涨",
			index: 1,
			style: SynthesisPlain,
			want:  "    <li><strong><strong>成本：</strong></strong>钢材上涨</li>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ListItem(tt.point, tt.index, tt.style); got != tt.want {
				t.Errorf("ListItem() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListItems(t *testing.T) {
	t.Parallel()

	points := []string{"趋势：需求上升", "无冒号要点"}

	plain := ListItems(points, SynthesisPlain)
	if plain != "    <li><strong>趋势：</strong>需求上升</li>\n    <li>无冒号要点</li>\n" {
		t.Errorf("unexpected plain items %q", plain)
	}

	numbered := ListItems(points, SynthesisNumbered)
	if !strings.Contains(numbered, "<li><strong>要点2：</strong>无冒号要点</li>") {
		t.Errorf("expected position-based numbering, got %q", numbered)
	}
}

func TestParseSynthesisStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SynthesisStyle
		wantErr bool
	}{
		{"plain", SynthesisPlain, false},
		{"Numbered", SynthesisNumbered, false},
		{" plain ", SynthesisPlain, false},
		{"", "", true},
		{"bullets", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSynthesisStyle(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSynthesisStyle) {
					t.Errorf("expected ErrInvalidSynthesisStyle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallout(t *testing.T) {
	t.Parallel()

	if got := CalloutContent("本周项目集中"); got != "<strong>小结：</strong> 本周项目集中" {
		t.Errorf("unexpected content %q", got)
	}
	if got := Callout("本周项目集中"); got != `<div class="callout"><strong>小结：</strong> 本周项目集中</div>` {
		t.Errorf("unexpected callout %q", got)
	}
}
