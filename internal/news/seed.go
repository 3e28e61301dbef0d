package news

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var seedNews = []News{
	{
		Title:   "Formatura de 30 novos profissionais em Culinária",
		Excerpt: "Celebramos a formatura de mais uma turma do curso de Culinária Profissional.",
		Content: "Na última sexta-feira, o Projeto Semear Lages realizou a cerimônia de formatura de 30 novos profissionais em Culinária. A turma, que iniciou o curso há 6 meses, demonstrou grande dedicação e habilidade durante todo o período de aprendizado.",
		Date:    NewDate(2024, time.October, 15),
	},
	{
		Title:   "Novo laboratório de Informática inaugurado",
		Excerpt: "Graças às doações recebidas, inauguramos um novo laboratório com 20 computadores modernos.",
		Content: "O Projeto Semear Lages dá mais um passo importante em sua missão de capacitação profissional. Com o apoio de parceiros e doadores, foi inaugurado um novo laboratório de informática equipado com 20 computadores de última geração.",
		Date:    NewDate(2024, time.October, 8),
	},
	{
		Title:   "Parceria com empresas locais gera 15 empregos",
		Excerpt: "Nossa parceria com empresas da região resultou na contratação de 15 ex-alunos.",
		Content: "O trabalho de networking e relacionamento com empresas locais está dando frutos. Nas últimas semanas, 15 ex-alunos do Projeto Semear Lages foram contratados por empresas parceiras, em diversas áreas como gastronomia, tecnologia e costura.",
		Date:    NewDate(2024, time.September, 28),
	},
}

// SeedIfEmpty adds the initial articles when there are no news yet.
// It returns how many articles were added.
func SeedIfEmpty(ctx context.Context, repo Repository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	if count > 0 {
		log.Debugf("news seed skipped, %d articles present", count)
		return 0, nil
	}

	added := 0
	for _, n := range seedNews {
		if _, err := repo.Add(ctx, n); err != nil {
			return added, fmt.Errorf("add seed news %q: %w", n.Title, err)
		}
		added++
	}

	log.Infof("news seeded with %d articles", added)
	return added, nil
}
