package web

import (
	"html/template"
)

func newTemplates() *template.Template {
	return template.Must(template.New("page").Parse(pageTemplate))
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Tasks</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
      display: flex;
      align-items: center;
      justify-content: space-between;
      gap: 12px;
    }
    header h1 {
      margin: 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    main {
      max-width: 640px;
      margin: 18px auto 28px;
      padding: 16px;
      background: #ffffff;
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(60, 45, 30, 0.08);
    }
    form.inline {
      display: inline;
    }
    .new-todo {
      display: flex;
      gap: 10px;
      margin-bottom: 14px;
    }
    .item-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 8px;
    }
    .list-item {
      display: flex;
      align-items: center;
      gap: 10px;
      padding: 6px 8px;
      border-radius: 10px;
      border: 1px solid #eee6d9;
    }
    .list-item.completed input[type="text"] {
      text-decoration: line-through;
      color: #72685f;
    }
    .list-item .title {
      flex: 1;
    }
    input[type="text"],
    select {
      width: 100%;
      padding: 8px 10px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      font-family: inherit;
      font-size: 14px;
      background: #fffdf9;
      box-sizing: border-box;
    }
    input[type="text"]:disabled {
      background: transparent;
      border-color: transparent;
    }
    button {
      padding: 6px 12px;
      border-radius: 8px;
      border: 1px solid #bfb3a2;
      background: #efe6d7;
      font-family: inherit;
      cursor: pointer;
    }
    button.danger {
      background: #f4d7d2;
      border-color: #d7a7a1;
    }
    .muted {
      color: #72685f;
    }
  </style>
</head>
<body>
  <header>
    <h1>Tasks</h1>
    {{if .HasFlags}}
      <form method="post" action="/filter">
        <select name="filter" aria-label="Filter" onchange="this.form.submit()">
          {{range .FilterOptions}}
            <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
          {{end}}
        </select>
        <noscript><button type="submit">Show</button></noscript>
      </form>
    {{end}}
  </header>
  <main>
    {{if .FormVisible}}
      <form class="new-todo" method="post" action="/todos/create">
        <input type="text" name="title" value="{{.Input}}" placeholder="What needs doing?" autofocus>
        <button type="submit">Add</button>
      </form>
    {{end}}
    {{if .TrashVisible}}
      <form class="new-todo" method="post" action="/trash/empty">
        <button class="danger" type="submit">Empty trash</button>
      </form>
    {{end}}
    <ul class="item-list">
      {{range .Rows}}
        <li class="list-item{{if .Todo.Completed}} completed{{end}}">
          {{if $.HasFlags}}
            <form class="inline" method="post" action="/todos/toggle-completed">
              <input type="hidden" name="id" value="{{.Todo.ID}}">
              <input type="checkbox" aria-label="Completed" onchange="this.form.submit()"{{if .Todo.Completed}} checked{{end}}{{if not .CanToggleCompleted}} disabled{{end}}>
            </form>
          {{end}}
          <form class="title" method="post" action="/todos/edit">
            <input type="hidden" name="id" value="{{.Todo.ID}}">
            <input type="text" name="title" value="{{.Todo.Title}}" data-edit="{{.Todo.ID}}"{{if not .CanEdit}} disabled{{end}}>
          </form>
          {{if .CanToggleDeleted}}
            <form class="inline" method="post" action="/todos/toggle-deleted">
              <input type="hidden" name="id" value="{{.Todo.ID}}">
              <button type="submit">{{.DeleteLabel}}</button>
            </form>
          {{end}}
        </li>
      {{else}}
        <li class="muted">No tasks.</li>
      {{end}}
    </ul>
  </main>
  <script>
    var edits = Promise.resolve();
    document.querySelectorAll("input[data-edit]").forEach(function (input) {
      input.addEventListener("input", function () {
        var body = new URLSearchParams();
        body.set("id", input.dataset.edit);
        body.set("title", input.value);
        edits = edits.then(function () {
          return fetch("/todos/edit", {
            method: "POST",
            headers: {"X-Requested-With": "fetch"},
            body: body
          });
        }).catch(function () {});
      });
      input.form.addEventListener("submit", function (event) {
        event.preventDefault();
      });
    });
  </script>
</body>
</html>
`
