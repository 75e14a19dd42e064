package render

import "RankScope/internal/model"

// NoopRenderer is a no-op implementation used for dry runs.
type NoopRenderer struct{}

func NewNoopRenderer() *NoopRenderer { return &NoopRenderer{} }

func (n *NoopRenderer) RenderLines(_ model.Selection, _ []model.Series) error { return nil }
func (n *NoopRenderer) RenderPie(_ []model.LabelShare) error                  { return nil }
func (n *NoopRenderer) RenderBars(_ model.BarFrame, _ float64) error          { return nil }
func (n *NoopRenderer) Close() error                                          { return nil }
