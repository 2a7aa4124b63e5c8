package report

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lentabot/internal/models"
)

func testOffers() []models.StoreOffer {
	return []models.StoreOffer{
		{Store: "ТК124", Address: "7-я Кожуховская 9", Price: 649.50},
		{Store: "ТК77", Address: "Пресненская наб. 4", Price: 585.00},
		{Store: "ТК9", Address: "Ленинский просп. 101", Price: 599.99},
	}
}

func TestBuildSortsByPriceAscending(t *testing.T) {
	data, err := Build("Водка Талка 0.5 л", testOffers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Водка Талка 0.5 л")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Магазин", "Адрес", "Цена", "Дата"}, rows[0][:4])

	assert.Equal(t, "ТК77", rows[1][0])
	assert.Equal(t, "ТК9", rows[2][0])
	assert.Equal(t, "ТК124", rows[3][0])

	prev := 0.0
	for _, row := range rows[1:] {
		price, err := strconv.ParseFloat(strings.ReplaceAll(row[2], ",", "."), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, price, prev)
		prev = price
	}
}

func TestBuildTruncatesSheetName(t *testing.T) {
	long := strings.Repeat("Очень длинное название товара ", 3)

	data, err := Build(long, testOffers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.LessOrEqual(t, len([]rune(sheets[0])), 31)
}

func TestBuildSanitizesSheetName(t *testing.T) {
	data, err := Build("Вино [красное] 1:1 */?", testOffers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	assert.NotContainsf(t, sheets[0], "[", "sheet name must be sanitized")
}

func TestBuildEmptyOffers(t *testing.T) {
	data, err := Build("Товар", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Товар")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestBuildTimestampFormat(t *testing.T) {
	data, err := Build("Товар", testOffers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Товар", "D2")
	require.NoError(t, err)
	assert.Regexp(t, `^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}$`, value)
}
