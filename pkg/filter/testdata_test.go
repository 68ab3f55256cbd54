package filter_test

import "github.com/wdm0006/dswizard/pkg/meta"

func generalFile() meta.DataFile {
	return meta.DataFile{
		ID:         10,
		Name:       "iris.csv",
		FileFormat: meta.General,
		Meta: meta.Meta{
			DataType:      meta.General,
			DataRows:      150,
			NumColumns:    5,
			Names:         []string{"sl", "sw", "pl", "pw", "species"},
			Dtypes:        []meta.ColumnType{meta.Numeric, meta.Numeric, meta.Categorical, meta.Text, meta.Categorical},
			UniquesPerCol: []int{35, 23, 43, 22, 3},
			Locked:        []bool{false, false, false, true, false},
			LastColumnInfo: &meta.LastColumnInfo{
				Classes: map[string]int{"0": 50, "1": 50, "2": 50},
				Distrib: map[string]int{"0": 50, "1": 50, "2": 50},
			},
		},
	}
}
