package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/acadsearch/acadsearch"
	"github.com/acadsearch/acadsearch/ai/mock"
	"github.com/acadsearch/acadsearch/core"
)

var sampleArticles = []core.Article{
	{Title: "Aprendizado de máquina aplicado ao diagnóstico de arboviroses", Abstract: "Avaliamos modelos supervisionados para triagem de dengue e zika em unidades básicas de saúde.", Year: 2022, Qualis: "A1", Journal: "Revista Brasileira de Computação Aplicada", Authors: []core.Author{{Name: "Maria Silva"}, {Name: "João Pereira"}}},
	{Title: "Redes neurais convolucionais na análise de imagens de satélite", Abstract: "Segmentação de áreas de desmatamento na Amazônia Legal com arquiteturas profundas.", Year: 2021, Qualis: "A2", Journal: "Journal of Remote Sensing", Authors: []core.Author{{Name: "Carlos Andrade"}}},
	{Title: "Taxonomia integrativa de bromélias do cerrado", Abstract: "Descrição de três novas espécies com base em dados morfológicos e moleculares.", Year: 2019, Qualis: "B1", Journal: "Acta Botanica Brasilica", Authors: []core.Author{{Name: "Fernanda Costa"}}},
	{Title: "Epidemiologia das doenças crônicas em populações ribeirinhas", Abstract: "Estudo transversal sobre hipertensão e diabetes no médio Solimões.", Year: 2020, Qualis: "B2", Journal: "Cadernos de Saúde Pública", Authors: []core.Author{{Name: "Paulo Nogueira"}, {Name: "Maria Silva"}}},
	{Title: "Mineração de dados educacionais para predição de evasão", Abstract: "Modelos de classificação aplicados a registros acadêmicos de universidades federais.", Year: 2023, Qualis: "A1", Journal: "Revista Brasileira de Informática na Educação", Authors: []core.Author{{Name: "Ana Duarte"}}},
	{Title: "Sedimentologia de planícies fluviais do rio Araguaia", Abstract: "Caracterização granulométrica e implicações para a dinâmica de cheias.", Year: 2018, Qualis: "C", Journal: "Revista Brasileira de Geomorfologia", Authors: []core.Author{{Name: "Ricardo Matos"}}},
}

var sampleResearchers = []core.Researcher{
	{Name: "Maria Silva", Degree: "Doutorado em Ciência da Computação", Summary: "Pesquisa aprendizado de máquina aplicado à saúde pública, com ênfase em doenças tropicais."},
	{Name: "Carlos Andrade", Degree: "Doutorado em Sensoriamento Remoto", Summary: "Atua em visão computacional para monitoramento ambiental da Amazônia."},
	{Name: "Fernanda Costa", Degree: "Doutorado em Botânica", Summary: "Especialista em taxonomia e sistemática de bromeliáceas."},
	{Name: "Ana Duarte", Degree: "Mestrado em Informática na Educação", Summary: "Investiga mineração de dados educacionais e políticas de permanência estudantil."},
}

var (
	dbPath  = flag.String("db", "./acadsearch_db", "path to BadgerDB database directory")
	useMock = flag.Bool("mock", true, "use the deterministic mock AI provider")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	var opts []acadsearch.ServiceOption
	if *useMock {
		opts = append(opts, acadsearch.WithProvider(mock.NewMockProvider()))
	}

	service, err := acadsearch.NewService(*dbPath, opts...)
	if err != nil {
		panic(err)
	}
	defer service.Close()

	ctx := context.Background()

	records := make([]core.Record, 0, len(sampleArticles)+len(sampleResearchers))
	for i := range sampleArticles {
		article := sampleArticles[i]
		article.Id = uuid.NewString()
		records = append(records, &article)
	}
	for i := range sampleResearchers {
		researcher := sampleResearchers[i]
		researcher.Id = uuid.NewString()
		records = append(records, &researcher)
	}

	pipeline, err := service.NewPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	if err := pipeline.Ingest(ctx, records...); err != nil {
		panic(err)
	}

	// Full rebuild so the indices are complete before the process exits,
	// independent of the async ingest jobs.
	if err := pipeline.IndexAll(ctx); err != nil {
		panic(err)
	}

	slog.Info("seeded database",
		"articles", len(sampleArticles),
		"researchers", len(sampleResearchers),
		"db", *dbPath)
}
