package updater

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nao1215/weeklyreport/internal/model"
	"github.com/nao1215/weeklyreport/internal/render"
)

const page = `<html><body>
<section id="sec1">
  <table>
    <tbody>
      <tr><td>日期（如：12月1日）</td></tr>
    </tbody>
  </table>
  <div class="callout"><strong>小结：</strong> 待补充</div>
</section>
<section id="sec2">
  <table>
    <tbody></tbody>
  </table>
</section>
<section id="sec5">
  <ol>
    <li>综合观察要点1</li>
  </ol>
</section>
<section id="sec6">
  <table>
    <tbody>
      <tr><td>关注事项</td></tr>
    </tbody>
  </table>
</section>
</body></html>
`

func quietUpdater(opts ...Option) *Updater {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(opts...)
}

func TestNew(t *testing.T) {
	t.Parallel()

	u := New()
	if u.style != render.SynthesisNumbered {
		t.Errorf("expected numbered style by default, got %s", u.style)
	}
	if u.logger == nil {
		t.Error("expected default logger")
	}
	if len(u.sections) != len(model.DefaultSections()) {
		t.Errorf("expected default sections, got %d", len(u.sections))
	}
}

func TestUpdateSectionTable(t *testing.T) {
	t.Parallel()

	rows := []model.Record{
		{"date": "12月1日", "region": "<strong>美国</strong>", "details": "数据中心", "impact": "利好"},
		{"date": "12月2日", "region": "华东"},
	}

	t.Run("uses the section column order", func(t *testing.T) {
		t.Parallel()

		got := quietUpdater().UpdateSectionTable(page, "sec1", rows)
		want := "<tbody>\n      " +
			"<tr><td>12月1日</td><td><strong>美国</strong></td><td>数据中心</td><td>利好</td></tr>\n      " +
			"<tr><td>12月2日</td><td>华东</td><td></td><td></td></tr>\n      " +
			"</tbody>"
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in\n%s", want, got)
		}
		if strings.Contains(got, "日期（如：12月1日）") {
			t.Error("expected placeholder row to be replaced")
		}
	})

	t.Run("explicit columns win", func(t *testing.T) {
		t.Parallel()

		got := quietUpdater().UpdateSectionTable(page, "sec2", rows[:1], "impact", "date")
		if !strings.Contains(got, "<tr><td>利好</td><td>12月1日</td></tr>") {
			t.Errorf("expected explicit column order, got\n%s", got)
		}
	})

	t.Run("unknown section uses sorted keys", func(t *testing.T) {
		t.Parallel()

		u := quietUpdater(WithSections([]model.SectionSpec{}))
		got := u.UpdateSectionTable(page, "sec2", []model.Record{{"b": "2", "a": "1"}})
		if !strings.Contains(got, "<tr><td>1</td><td>2</td></tr>") {
			t.Errorf("expected sorted keys, got\n%s", got)
		}
	})

	t.Run("missing section leaves document unchanged and warns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		u := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		got := u.UpdateSectionTable(page, "sec4", rows)
		if got != page {
			t.Error("expected document to be unchanged")
		}
		if !strings.Contains(buf.String(), "section=sec4") {
			t.Errorf("expected warning naming the section, got %q", buf.String())
		}
	})

	t.Run("section without table body is unchanged", func(t *testing.T) {
		t.Parallel()

		if got := quietUpdater().UpdateSectionTable(page, "sec5", rows); got != page {
			t.Error("expected document to be unchanged")
		}
	})
}

func TestUpdateSummary(t *testing.T) {
	t.Parallel()

	t.Run("replaces existing callout", func(t *testing.T) {
		t.Parallel()

		got := quietUpdater().UpdateSummary(page, "sec1", "需求回暖")
		if !strings.Contains(got, `<div class="callout"><strong>小结：</strong> 需求回暖</div>`) {
			t.Errorf("expected new callout, got\n%s", got)
		}
		if strings.Contains(got, "待补充") {
			t.Error("expected old callout to be replaced")
		}
		if strings.Count(got, `class="callout"`) != 1 {
			t.Error("expected exactly one callout")
		}
	})

	t.Run("inserts callout after table", func(t *testing.T) {
		t.Parallel()

		got := quietUpdater().UpdateSummary(page, "sec2", "价格平稳")
		want := "</table>\n  " + `<div class="callout"><strong>小结：</strong> 价格平稳</div>`
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in\n%s", want, got)
		}
	})

	t.Run("section without table is unchanged", func(t *testing.T) {
		t.Parallel()

		if got := quietUpdater().UpdateSummary(page, "sec5", "x"); got != page {
			t.Error("expected document to be unchanged")
		}
	})

	t.Run("missing section is unchanged", func(t *testing.T) {
		t.Parallel()

		if got := quietUpdater().UpdateSummary(page, "sec3", "x"); got != page {
			t.Error("expected document to be unchanged")
		}
	})
}

func TestUpdateSynthesis(t *testing.T) {
	t.Parallel()

	points := []string{"趋势：需求上升", "无冒号要点", "<strong>成本：</strong>钢材上涨"}

	tests := []struct {
		name  string
		opts  []Option
		wants []string
	}{
		{
			name: "numbered by default",
			wants: []string{
				"<ol>\n    <li><strong>趋势：</strong>需求上升</li>\n",
				"    <li><strong>要点2：</strong>无冒号要点</li>\n",
				"    <li><strong>成本：</strong>钢材上涨</li>\n</ol>",
			},
		},
		{
			name: "plain style",
			opts: []Option{WithSynthesisStyle(render.SynthesisPlain)},
			wants: []string{
				"    <li>无冒号要点</li>\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := quietUpdater(tt.opts...).UpdateSynthesis(page, points)
			for _, want := range tt.wants {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in\n%s", want, got)
				}
			}
			if strings.Contains(got, "综合观察要点1") {
				t.Error("expected placeholder item to be replaced")
			}
		})
	}
}

func TestUpdateWatchlist(t *testing.T) {
	t.Parallel()

	items := []model.Record{{"focus": "钢价", "timing": "下周一", "impact": "成本"}}
	got := quietUpdater().UpdateWatchlist(page, items)

	want := "<tbody>\n      <tr>\n        <td><strong>钢价</strong></td>\n        <td>下周一</td>\n        <td>成本</td>\n      </tr>\n    </tbody>"
	if !strings.Contains(got, want) {
		t.Errorf("expected %q in\n%s", want, got)
	}

	if got := quietUpdater().UpdateWatchlist("<html></html>", items); got != "<html></html>" {
		t.Error("expected document without watchlist to be unchanged")
	}
}

func TestUpdatesCompose(t *testing.T) {
	t.Parallel()

	u := quietUpdater()
	html := u.UpdateSectionTable(page, "sec1", []model.Record{{"date": "12月3日"}})
	html = u.UpdateSummary(html, "sec1", "第一周")
	html = u.UpdateSynthesis(html, []string{"结论：稳定"})
	html = u.UpdateWatchlist(html, []model.Record{{"focus": "展会"}})

	for _, want := range []string{"12月3日", "第一周", "<strong>结论：</strong>稳定", "<strong>展会</strong>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in composed document", want)
		}
	}
	if !strings.HasPrefix(html, "<html><body>\n<section id=\"sec1\">") || !strings.HasSuffix(html, "</body></html>\n") {
		t.Error("expected surrounding markup to be preserved")
	}
}
